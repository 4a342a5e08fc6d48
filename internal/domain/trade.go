package domain

import (
	"time"

	"github.com/google/uuid"
)

// Holding is a user's position in a single stock
type Holding struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Quantity  float64   `json:"quantity"`
	AvgPrice  float64   `json:"avg_price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarketValue returns the holding value at the given quote
func (h *Holding) MarketValue(price float64) float64 {
	return h.Quantity * price
}

// Trade is an executed paper order
type Trade struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Side      TradeSide `json:"side"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// TradeSide is the direction of an order
type TradeSide string

// TradeSide constants
const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// ValidSide reports whether s is a known trade side
func ValidSide(s TradeSide) bool {
	return s == SideBuy || s == SideSell
}
