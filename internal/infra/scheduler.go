package infra

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"papertrade/internal/service"
)

// Scheduler manages the recurring platform jobs: the simulated market
// ticker, the presence sweep, and the daily stats snapshot.
type Scheduler struct {
	cron     *cron.Cron
	ticker   *service.PriceTickerService
	presence *service.PresenceService
	reports  *service.ReportService
}

// NewScheduler creates a new scheduler
func NewScheduler(
	ticker *service.PriceTickerService,
	presence *service.PresenceService,
	reports *service.ReportService,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		ticker:   ticker,
		presence: presence,
		reports:  reports,
	}
}

// Start registers and starts all jobs
func (s *Scheduler) Start() error {
	log.Println("Starting scheduler...")

	// Price ticker: every 15 seconds
	if _, err := s.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()
		if err := s.ticker.Tick(ctx); err != nil {
			log.Printf("ERROR: Price ticker failed: %v", err)
		}
	}); err != nil {
		return err
	}

	// Presence sweep: every minute
	if _, err := s.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := s.presence.Sweep(ctx); err != nil {
			log.Printf("ERROR: Presence sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}

	// Daily stats snapshot: midnight
	if _, err := s.cron.AddFunc("0 0 0 * * *", func() {
		ctx := context.Background()
		if err := s.reports.WriteDailySnapshot(ctx); err != nil {
			log.Printf("ERROR: Daily snapshot failed: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()

	log.Println("[OK] Scheduler started:")
	log.Println("  - Price ticker: every 15 seconds")
	log.Println("  - Presence sweep: every minute")
	log.Println("  - Daily snapshot: midnight")

	return nil
}

// RunTickNow triggers one ticker pass outside the schedule
func (s *Scheduler) RunTickNow() error {
	return s.ticker.Tick(context.Background())
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler stopped")
}
