package service

import (
	"context"
	"log"

	"papertrade/internal/domain"
	"papertrade/internal/utils"
)

// UserStats holds the user counters on the admin dashboard
type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Pending  int `json:"pending"`
	Online   int `json:"online"`
	NewToday int `json:"newToday"`
}

// TradingStats holds the trading counters on the admin dashboard
type TradingStats struct {
	Trades      int     `json:"trades"`
	Volume      float64 `json:"volume"`
	TradesToday int     `json:"tradesToday"`
}

// Stats is the full admin dashboard payload
type Stats struct {
	Users   UserStats    `json:"users"`
	Trading TradingStats `json:"trading"`
}

// StatsService aggregates the dashboard counters from the user and trade
// tables plus the presence tracker.
type StatsService struct {
	userRepo  domain.UserRepository
	tradeRepo domain.TradeRepository
	presence  *PresenceService
}

// NewStatsService creates a new StatsService
func NewStatsService(userRepo domain.UserRepository, tradeRepo domain.TradeRepository, presence *PresenceService) *StatsService {
	return &StatsService{
		userRepo:  userRepo,
		tradeRepo: tradeRepo,
		presence:  presence,
	}
}

// Snapshot builds the current dashboard stats
func (s *StatsService) Snapshot(ctx context.Context) (*Stats, error) {
	dayStart := utils.StartOfToday()

	counts, err := s.userRepo.Counts(ctx, dayStart)
	if err != nil {
		return nil, err
	}

	trades, volume, today, err := s.tradeRepo.Counts(ctx, dayStart)
	if err != nil {
		return nil, err
	}

	online := 0
	if s.presence != nil {
		online, err = s.presence.OnlineCount(ctx)
		if err != nil {
			// Presence is best effort; the rest of the dashboard still loads.
			log.Printf("WARNING: Failed to read online count: %v", err)
			online = 0
		}
	}

	return &Stats{
		Users: UserStats{
			Total:    counts.Total,
			Active:   counts.Active,
			Pending:  counts.Pending,
			Online:   online,
			NewToday: counts.NewToday,
		},
		Trading: TradingStats{
			Trades:      trades,
			Volume:      volume,
			TradesToday: today,
		},
	}, nil
}
