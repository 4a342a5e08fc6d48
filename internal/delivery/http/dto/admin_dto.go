package dto

import "github.com/google/uuid"

// ApproveRequest resolves a pending registration
type ApproveRequest struct {
	Approve bool `json:"approve"`
}

// SetStatusRequest moves one user to a new status
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BulkActionRequest applies one action to a selection of user IDs
type BulkActionRequest struct {
	IDs    []uuid.UUID `json:"ids" validate:"required,min=1"`
	Action string      `json:"action" validate:"required"`
}

// StockRequest creates or updates a stock
type StockRequest struct {
	Symbol    string  `json:"symbol" validate:"required,max=16"`
	Name      string  `json:"name" validate:"required"`
	LastPrice float64 `json:"last_price" validate:"gte=0"`
	PrevClose float64 `json:"prev_close" validate:"gte=0"`
	Status    string  `json:"status"`
}

// CompetitionRequest creates or updates a competition
type CompetitionRequest struct {
	Name         string  `json:"name" validate:"required"`
	Status       string  `json:"status"`
	StartsAt     string  `json:"starts_at" validate:"required"`
	EndsAt       string  `json:"ends_at" validate:"required"`
	PrizePool    float64 `json:"prize_pool" validate:"gte=0"`
	Participants int     `json:"participants" validate:"gte=0"`
}

// ReportRequest files a manual report
type ReportRequest struct {
	Type  string `json:"type" validate:"required"`
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"`
}
