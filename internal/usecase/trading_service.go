package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"papertrade/internal/domain"
)

// minQuantity rejects dust orders
const minQuantity = 0.0001

// TradingService executes paper market orders and keeps the portfolio
// math consistent: cash balance, holdings at weighted average cost, trade
// count, and the cached portfolio value.
type TradingService struct {
	userRepo    domain.UserRepository
	stockRepo   domain.StockRepository
	holdingRepo domain.HoldingRepository
	tradeRepo   domain.TradeRepository
}

// NewTradingService creates a new TradingService
func NewTradingService(
	userRepo domain.UserRepository,
	stockRepo domain.StockRepository,
	holdingRepo domain.HoldingRepository,
	tradeRepo domain.TradeRepository,
) *TradingService {
	return &TradingService{
		userRepo:    userRepo,
		stockRepo:   stockRepo,
		holdingRepo: holdingRepo,
		tradeRepo:   tradeRepo,
	}
}

// PortfolioLine is one holding priced at the current quote
type PortfolioLine struct {
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
	AvgPrice    float64 `json:"avg_price"`
	LastPrice   float64 `json:"last_price"`
	MarketValue float64 `json:"market_value"`
	PnL         float64 `json:"pnl"`
}

// Portfolio is a user's full position summary
type Portfolio struct {
	CashBalance    float64         `json:"cash_balance"`
	PortfolioValue float64         `json:"portfolio_value"`
	TotalValue     float64         `json:"total_value"`
	Holdings       []PortfolioLine `json:"holdings"`
}

// ExecuteOrder fills a market order at the current quote. BUY requires
// cash, SELL requires quantity; both update the holding, the user's
// balances, and write a trade row.
func (s *TradingService) ExecuteOrder(ctx context.Context, userID uuid.UUID, symbol string, side domain.TradeSide, quantity float64) (*domain.Trade, error) {
	if !domain.ValidSide(side) {
		return nil, fmt.Errorf("invalid trade side: %s", side)
	}
	if quantity < minQuantity {
		return nil, fmt.Errorf("quantity must be at least %g", minQuantity)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stock, err := s.stockRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if !stock.Tradable() {
		return nil, domain.ErrStockHalted
	}

	price := stock.LastPrice
	total := price * quantity

	holding, err := s.holdingRepo.GetByUserAndSymbol(ctx, userID, stock.Symbol)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var cash float64
	switch side {
	case domain.SideBuy:
		if user.CashBalance < total {
			return nil, domain.ErrInsufficientFunds
		}
		cash = user.CashBalance - total

		if holding == nil {
			holding = &domain.Holding{
				ID:       uuid.New(),
				UserID:   userID,
				Symbol:   stock.Symbol,
				Quantity: quantity,
				AvgPrice: price,
			}
		} else {
			// Weighted average entry across the combined position
			newQty := holding.Quantity + quantity
			holding.AvgPrice = (holding.AvgPrice*holding.Quantity + total) / newQty
			holding.Quantity = newQty
		}
		if err := s.holdingRepo.Upsert(ctx, holding); err != nil {
			return nil, err
		}

	case domain.SideSell:
		if holding == nil || holding.Quantity < quantity {
			return nil, domain.ErrInsufficientHoldings
		}
		cash = user.CashBalance + total

		holding.Quantity -= quantity
		if holding.Quantity < minQuantity {
			if err := s.holdingRepo.Delete(ctx, holding.ID); err != nil {
				return nil, err
			}
		} else {
			if err := s.holdingRepo.Upsert(ctx, holding); err != nil {
				return nil, err
			}
		}
	}

	trade := &domain.Trade{
		ID:        uuid.New(),
		UserID:    userID,
		Symbol:    stock.Symbol,
		Side:      side,
		Quantity:  quantity,
		Price:     price,
		Total:     total,
		CreatedAt: time.Now(),
	}
	if err := s.tradeRepo.Save(ctx, trade); err != nil {
		return nil, err
	}

	portfolio, err := s.valueHoldings(ctx, userID)
	if err != nil {
		log.Printf("WARNING: Failed to revalue portfolio for user %s: %v", userID, err)
		portfolio = user.PortfolioValue
	}

	if err := s.userRepo.UpdateBalances(ctx, userID, cash, portfolio, user.TradeCount+1); err != nil {
		return nil, err
	}

	log.Printf("[OK] Trade executed: %s %s %.4f %s @ %.2f (total %.2f)",
		userID, side, quantity, stock.Symbol, price, total)

	return trade, nil
}

// GetPortfolio returns the user's holdings priced at current quotes
func (s *TradingService) GetPortfolio(ctx context.Context, userID uuid.UUID) (*Portfolio, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.holdingRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{CashBalance: user.CashBalance}
	for _, h := range holdings {
		stock, err := s.stockRepo.GetBySymbol(ctx, h.Symbol)
		if err != nil {
			log.Printf("WARNING: Quote missing for held symbol %s, skipping", h.Symbol)
			continue
		}

		value := h.MarketValue(stock.LastPrice)
		portfolio.Holdings = append(portfolio.Holdings, PortfolioLine{
			Symbol:      h.Symbol,
			Quantity:    h.Quantity,
			AvgPrice:    h.AvgPrice,
			LastPrice:   stock.LastPrice,
			MarketValue: value,
			PnL:         value - h.Quantity*h.AvgPrice,
		})
		portfolio.PortfolioValue += value
	}

	portfolio.TotalValue = portfolio.CashBalance + portfolio.PortfolioValue
	return portfolio, nil
}

// GetRecentTrades returns the user's trade history, newest first
func (s *TradingService) GetRecentTrades(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Trade, error) {
	return s.tradeRepo.GetByUser(ctx, userID, limit)
}

func (s *TradingService) valueHoldings(ctx context.Context, userID uuid.UUID) (float64, error) {
	holdings, err := s.holdingRepo.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, h := range holdings {
		stock, err := s.stockRepo.GetBySymbol(ctx, h.Symbol)
		if err != nil {
			continue
		}
		total += h.MarketValue(stock.LastPrice)
	}

	return total, nil
}
