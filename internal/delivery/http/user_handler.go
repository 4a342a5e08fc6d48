package http

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"papertrade/internal/delivery/http/dto"
	"papertrade/internal/domain"
	"papertrade/internal/middleware"
	"papertrade/internal/service"
	"papertrade/internal/usecase"
)

// UserHandler handles user-facing dashboard requests
type UserHandler struct {
	userRepo       domain.UserRepository
	stockRepo      domain.StockRepository
	tradingService *usecase.TradingService
	presence       *service.PresenceService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo domain.UserRepository,
	stockRepo domain.StockRepository,
	tradingService *usecase.TradingService,
	presence *service.PresenceService,
) *UserHandler {
	return &UserHandler{
		userRepo:       userRepo,
		stockRepo:      stockRepo,
		tradingService: tradingService,
		presence:       presence,
	}
}

// GetMe returns current user details
// GET /api/user/me
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotFoundResponse(c, "User not found")
		}
		return InternalServerErrorResponse(c, "Failed to get user details", err)
	}

	return SuccessResponse(c, dto.NewUserOutput(user))
}

// GetPortfolio returns the user's holdings priced at current quotes
// GET /api/user/portfolio
func (h *UserHandler) GetPortfolio(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	portfolio, err := h.tradingService.GetPortfolio(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load portfolio", err)
	}

	return SuccessResponse(c, portfolio)
}

// PlaceTrade executes a market order
// POST /api/user/trades
func (h *UserHandler) PlaceTrade(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	trade, err := h.tradingService.ExecuteOrder(ctx, userID, req.Symbol, domain.TradeSide(req.Side), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return NotFoundResponse(c, "Unknown symbol")
		case errors.Is(err, domain.ErrStockHalted):
			return ConflictResponse(c, "Trading is halted for this symbol")
		case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, domain.ErrInsufficientHoldings):
			return BadRequestResponse(c, err.Error())
		}
		return InternalServerErrorResponse(c, "Failed to execute trade", err)
	}

	return CreatedResponse(c, trade)
}

// GetTrades returns the user's recent trades
// GET /api/user/trades
func (h *UserHandler) GetTrades(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trades, err := h.tradingService.GetRecentTrades(ctx, userID, 50)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load trades", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"trades": trades,
		"count":  len(trades),
	})
}

// Heartbeat marks the user online for the presence window
// POST /api/user/heartbeat
func (h *UserHandler) Heartbeat(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	if err := h.presence.Heartbeat(c.Request().Context(), userID); err != nil {
		log.Printf("WARNING: Heartbeat failed for user %s: %v", userID, err)
	}

	return SuccessResponse(c, nil)
}

// GetStocks returns the quote board
// GET /api/stocks
func (h *UserHandler) GetStocks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stocks, err := h.stockRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to load stocks", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"stocks": stocks,
		"count":  len(stocks),
	})
}
