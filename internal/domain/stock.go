package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stock represents a tradable instrument on the quote board
type Stock struct {
	ID        uuid.UUID   `json:"id"`
	Symbol    string      `json:"symbol"`
	Name      string      `json:"name"`
	LastPrice float64     `json:"last_price"`
	DayChange float64     `json:"day_change"` // percent vs previous close
	PrevClose float64     `json:"prev_close"`
	Status    StockStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// StockStatus is the trading state of a stock
type StockStatus string

// StockStatus constants
const (
	StockActive StockStatus = "active"
	StockHalted StockStatus = "halted"
)

// Tradable reports whether orders may execute against the stock
func (s *Stock) Tradable() bool {
	return s.Status == StockActive && s.LastPrice > 0
}
