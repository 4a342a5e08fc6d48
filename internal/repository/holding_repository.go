package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"papertrade/internal/domain"
)

// HoldingRepositoryImpl implements the HoldingRepository interface
type HoldingRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewHoldingRepository creates a new HoldingRepository
func NewHoldingRepository(db *pgxpool.Pool) domain.HoldingRepository {
	return &HoldingRepositoryImpl{db: db}
}

func (r *HoldingRepositoryImpl) queryHoldings(ctx context.Context, query string, args ...interface{}) ([]*domain.Holding, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.Holding
	for rows.Next() {
		h := &domain.Holding{}
		if err := rows.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Quantity, &h.AvgPrice, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// GetByUser retrieves all holdings for a user
func (r *HoldingRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	query := `
		SELECT id, user_id, symbol, quantity, avg_price, updated_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY symbol ASC
	`
	return r.queryHoldings(ctx, query, userID)
}

// GetByUserAndSymbol retrieves one holding
func (r *HoldingRepositoryImpl) GetByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (*domain.Holding, error) {
	query := `
		SELECT id, user_id, symbol, quantity, avg_price, updated_at
		FROM holdings
		WHERE user_id = $1 AND symbol = $2
	`

	h := &domain.Holding{}
	err := r.db.QueryRow(ctx, query, userID, symbol).Scan(
		&h.ID, &h.UserID, &h.Symbol, &h.Quantity, &h.AvgPrice, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return h, nil
}

// GetBySymbol retrieves every holding in a symbol across all users
func (r *HoldingRepositoryImpl) GetBySymbol(ctx context.Context, symbol string) ([]*domain.Holding, error) {
	query := `
		SELECT id, user_id, symbol, quantity, avg_price, updated_at
		FROM holdings
		WHERE symbol = $1
	`
	return r.queryHoldings(ctx, query, symbol)
}

// Upsert inserts or replaces a holding keyed by (user_id, symbol)
func (r *HoldingRepositoryImpl) Upsert(ctx context.Context, h *domain.Holding) error {
	query := `
		INSERT INTO holdings (id, user_id, symbol, quantity, avg_price, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, symbol)
		DO UPDATE SET quantity = $4, avg_price = $5, updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query, h.ID, h.UserID, h.Symbol, h.Quantity, h.AvgPrice)
	if err != nil {
		return fmt.Errorf("failed to upsert holding: %w", err)
	}

	return nil
}

// Delete removes a holding once its quantity reaches zero
func (r *HoldingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	return nil
}
