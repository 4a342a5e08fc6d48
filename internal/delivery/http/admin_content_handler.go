package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"papertrade/internal/delivery/http/dto"
	"papertrade/internal/domain"
	"papertrade/internal/middleware"
	"papertrade/internal/service"
)

// AdminContentHandler handles the admin console's stock, competition,
// report, and audit log screens.
type AdminContentHandler struct {
	stockRepo       domain.StockRepository
	competitionRepo domain.CompetitionRepository
	reportService   *service.ReportService
	auditRepo       domain.AuditLogRepository
}

// NewAdminContentHandler creates a new AdminContentHandler
func NewAdminContentHandler(
	stockRepo domain.StockRepository,
	competitionRepo domain.CompetitionRepository,
	reportService *service.ReportService,
	auditRepo domain.AuditLogRepository,
) *AdminContentHandler {
	return &AdminContentHandler{
		stockRepo:       stockRepo,
		competitionRepo: competitionRepo,
		reportService:   reportService,
		auditRepo:       auditRepo,
	}
}

// ListStocks returns all stocks including halted ones
// GET /api/admin/stocks
func (h *AdminContentHandler) ListStocks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stocks, err := h.stockRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch stocks", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"stocks": stocks,
		"count":  len(stocks),
	})
}

// CreateStock adds a stock to the quote board
// POST /api/admin/stocks
func (h *AdminContentHandler) CreateStock(c echo.Context) error {
	var req dto.StockRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, err.Error())
	}

	status := domain.StockStatus(req.Status)
	if status == "" {
		status = domain.StockActive
	}
	if status != domain.StockActive && status != domain.StockHalted {
		return BadRequestResponse(c, "Unknown stock status")
	}

	prevClose := req.PrevClose
	if prevClose == 0 {
		prevClose = req.LastPrice
	}

	stock := &domain.Stock{
		ID:        uuid.New(),
		Symbol:    req.Symbol,
		Name:      req.Name,
		LastPrice: req.LastPrice,
		PrevClose: prevClose,
		Status:    status,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.stockRepo.Create(ctx, stock); err != nil {
		return InternalServerErrorResponse(c, "Failed to create stock", err)
	}

	return CreatedResponse(c, stock)
}

// UpdateStock edits a stock record
// PUT /api/admin/stocks/:id
func (h *AdminContentHandler) UpdateStock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid stock id")
	}

	var req dto.StockRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stock, err := h.stockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotFoundResponse(c, "Stock not found")
		}
		return InternalServerErrorResponse(c, "Failed to fetch stock", err)
	}

	stock.Name = req.Name
	stock.LastPrice = req.LastPrice
	if req.PrevClose > 0 {
		stock.PrevClose = req.PrevClose
	}
	if req.Status != "" {
		status := domain.StockStatus(req.Status)
		if status != domain.StockActive && status != domain.StockHalted {
			return BadRequestResponse(c, "Unknown stock status")
		}
		stock.Status = status
	}

	if err := h.stockRepo.Update(ctx, stock); err != nil {
		return InternalServerErrorResponse(c, "Failed to update stock", err)
	}

	return SuccessResponse(c, stock)
}

// HaltStock takes a stock off the board. Quotes and history are kept;
// "delete" halts trading rather than removing rows.
// DELETE /api/admin/stocks/:id
func (h *AdminContentHandler) HaltStock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid stock id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.stockRepo.SetStatus(ctx, id, domain.StockHalted); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotFoundResponse(c, "Stock not found")
		}
		return InternalServerErrorResponse(c, "Failed to halt stock", err)
	}

	return SuccessMessageResponse(c, "Stock halted", nil)
}

// ListCompetitions returns all competitions
// GET /api/admin/competitions
func (h *AdminContentHandler) ListCompetitions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	comps, err := h.competitionRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch competitions", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"competitions": comps,
		"count":        len(comps),
	})
}

func competitionFromRequest(req *dto.CompetitionRequest) (*domain.Competition, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, errors.New("starts_at must be RFC3339")
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, errors.New("ends_at must be RFC3339")
	}
	if !endsAt.After(startsAt) {
		return nil, errors.New("ends_at must be after starts_at")
	}

	status := domain.CompetitionStatus(req.Status)
	if status == "" {
		status = domain.CompetitionUpcoming
	}
	if !domain.ValidCompetitionStatus(status) {
		return nil, errors.New("unknown competition status")
	}

	return &domain.Competition{
		Name:         req.Name,
		Status:       status,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		PrizePool:    req.PrizePool,
		Participants: req.Participants,
	}, nil
}

// CreateCompetition adds a trading contest
// POST /api/admin/competitions
func (h *AdminContentHandler) CreateCompetition(c echo.Context) error {
	var req dto.CompetitionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, err.Error())
	}

	comp, err := competitionFromRequest(&req)
	if err != nil {
		return BadRequestResponse(c, err.Error())
	}
	comp.ID = uuid.New()
	comp.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.competitionRepo.Create(ctx, comp); err != nil {
		return InternalServerErrorResponse(c, "Failed to create competition", err)
	}

	return CreatedResponse(c, comp)
}

// UpdateCompetition edits a trading contest
// PUT /api/admin/competitions/:id
func (h *AdminContentHandler) UpdateCompetition(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid competition id")
	}

	var req dto.CompetitionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, err.Error())
	}

	comp, err := competitionFromRequest(&req)
	if err != nil {
		return BadRequestResponse(c, err.Error())
	}
	comp.ID = id

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.competitionRepo.Update(ctx, comp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotFoundResponse(c, "Competition not found")
		}
		return InternalServerErrorResponse(c, "Failed to update competition", err)
	}

	return SuccessResponse(c, comp)
}

// ListReports returns the newest reports
// GET /api/admin/reports
func (h *AdminContentHandler) ListReports(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reports, err := h.reportService.Recent(ctx, limit)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch reports", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}

// CreateReport files a manual report
// POST /api/admin/reports
func (h *AdminContentHandler) CreateReport(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.ReportRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	report, err := h.reportService.File(ctx, domain.ReportType(req.Type), req.Title, req.Body, actorID.String())
	if err != nil {
		return BadRequestResponse(c, err.Error())
	}

	return CreatedResponse(c, report)
}

// ListAuditLogs returns one page of the audit trail, newest first
// GET /api/admin/logs
func (h *AdminContentHandler) ListAuditLogs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, total, err := h.auditRepo.GetPage(ctx, page, limit)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch audit logs", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"logs":  entries,
		"total": total,
	})
}
