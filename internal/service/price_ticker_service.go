package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"papertrade/internal/domain"
)

const (
	// Max fractional move per tick. Quotes random-walk within this band
	// so paper portfolios see realistic intraday drift.
	maxTickMove = 0.005 // 0.5%

	// Floor keeps a quote from walking to zero
	minQuote = 0.01
)

// PriceTickerService drives the simulated market: each tick nudges every
// active quote and refreshes the cached portfolio values of users holding
// the touched symbols.
type PriceTickerService struct {
	stockRepo   domain.StockRepository
	holdingRepo domain.HoldingRepository
	userRepo    domain.UserRepository
	rng         *rand.Rand
}

// NewPriceTickerService creates a new PriceTickerService
func NewPriceTickerService(
	stockRepo domain.StockRepository,
	holdingRepo domain.HoldingRepository,
	userRepo domain.UserRepository,
	rng *rand.Rand,
) *PriceTickerService {
	return &PriceTickerService{
		stockRepo:   stockRepo,
		holdingRepo: holdingRepo,
		userRepo:    userRepo,
		rng:         rng,
	}
}

// Tick advances every active quote one step and refreshes holder
// portfolio values. Individual failures are logged and skipped so one bad
// symbol never stalls the whole board.
func (s *PriceTickerService) Tick(ctx context.Context) error {
	stocks, err := s.stockRepo.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active stocks: %w", err)
	}

	touched := make(map[string]float64, len(stocks))
	for _, stock := range stocks {
		price := s.nextPrice(stock.LastPrice)
		dayChange := 0.0
		if stock.PrevClose > 0 {
			dayChange = (price - stock.PrevClose) / stock.PrevClose * 100
		}

		if err := s.stockRepo.UpdatePrice(ctx, stock.ID, price, dayChange); err != nil {
			log.Printf("ERROR: Failed to update price for %s: %v", stock.Symbol, err)
			continue
		}
		touched[stock.Symbol] = price
	}

	return s.refreshPortfolios(ctx, touched)
}

// nextPrice walks the quote one bounded random step
func (s *PriceTickerService) nextPrice(price float64) float64 {
	move := (s.rng.Float64()*2 - 1) * maxTickMove
	next := price * (1 + move)
	if next < minQuote {
		next = minQuote
	}
	return next
}

// refreshPortfolios recomputes portfolio value for every user holding a
// touched symbol, priced at the new quotes.
func (s *PriceTickerService) refreshPortfolios(ctx context.Context, quotes map[string]float64) error {
	holders := make(map[uuid.UUID]bool)
	for symbol := range quotes {
		holdings, err := s.holdingRepo.GetBySymbol(ctx, symbol)
		if err != nil {
			log.Printf("ERROR: Failed to load holders of %s: %v", symbol, err)
			continue
		}
		for _, h := range holdings {
			holders[h.UserID] = true
		}
	}

	for userID := range holders {
		value, err := s.portfolioValue(ctx, userID)
		if err != nil {
			log.Printf("ERROR: Failed to value portfolio for user %s: %v", userID, err)
			continue
		}

		if err := s.userRepo.UpdatePortfolioValue(ctx, userID, value); err != nil {
			log.Printf("ERROR: Failed to cache portfolio value for user %s: %v", userID, err)
		}
	}

	return nil
}

// portfolioValue sums a user's holdings at current quotes
func (s *PriceTickerService) portfolioValue(ctx context.Context, userID uuid.UUID) (float64, error) {
	holdings, err := s.holdingRepo.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, h := range holdings {
		stock, err := s.stockRepo.GetBySymbol(ctx, h.Symbol)
		if err != nil {
			log.Printf("WARNING: Quote missing for held symbol %s, skipping", h.Symbol)
			continue
		}
		total += h.MarketValue(stock.LastPrice)
	}

	return total, nil
}
