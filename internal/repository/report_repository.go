package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"papertrade/internal/domain"
)

// ReportRepositoryImpl implements the ReportRepository interface
type ReportRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) domain.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// Create creates a new report
func (r *ReportRepositoryImpl) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (id, type, title, body, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		report.ID, report.Type, report.Title, report.Body, report.CreatedBy, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// GetRecent retrieves the most recent reports
func (r *ReportRepositoryImpl) GetRecent(ctx context.Context, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, type, title, body, created_by, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report := &domain.Report{}
		err := rows.Scan(
			&report.ID, &report.Type, &report.Title, &report.Body,
			&report.CreatedBy, &report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}
