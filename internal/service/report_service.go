package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"papertrade/internal/domain"
)

// ReportService writes operational reports. The daily snapshot job calls
// WriteDailySnapshot once at midnight; admins can also file reports by hand.
type ReportService struct {
	reportRepo domain.ReportRepository
	stats      *StatsService
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo domain.ReportRepository, stats *StatsService) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		stats:      stats,
	}
}

// WriteDailySnapshot records yesterday's platform counters as a report row
func (s *ReportService) WriteDailySnapshot(ctx context.Context) error {
	snapshot, err := s.stats.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to build stats snapshot: %w", err)
	}

	now := time.Now()
	report := &domain.Report{
		ID:    uuid.New(),
		Type:  domain.ReportDaily,
		Title: fmt.Sprintf("Daily snapshot %s", now.Format("2006-01-02")),
		Body: fmt.Sprintf(
			"users: total=%d active=%d pending=%d newToday=%d | trading: trades=%d volume=%.2f tradesToday=%d",
			snapshot.Users.Total, snapshot.Users.Active, snapshot.Users.Pending, snapshot.Users.NewToday,
			snapshot.Trading.Trades, snapshot.Trading.Volume, snapshot.Trading.TradesToday,
		),
		CreatedBy: "system",
		CreatedAt: now,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return err
	}

	log.Printf("[OK] Daily snapshot written: %s", report.Title)
	return nil
}

// File records a manually created report
func (s *ReportService) File(ctx context.Context, reportType domain.ReportType, title, body, createdBy string) (*domain.Report, error) {
	if !domain.ValidReportType(reportType) {
		return nil, fmt.Errorf("unknown report type: %s", reportType)
	}

	report := &domain.Report{
		ID:        uuid.New(),
		Type:      reportType,
		Title:     title,
		Body:      body,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// Recent returns the newest reports for the admin viewer
func (s *ReportService) Recent(ctx context.Context, limit int) ([]*domain.Report, error) {
	return s.reportRepo.GetRecent(ctx, limit)
}
