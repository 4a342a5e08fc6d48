package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"papertrade/internal/domain"
)

// TradeRepositoryImpl implements the TradeRepository interface
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

// Save writes one executed trade
func (r *TradeRepositoryImpl) Save(ctx context.Context, t *domain.Trade) error {
	query := `
		INSERT INTO trades (id, user_id, symbol, side, quantity, price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		t.ID, t.UserID, t.Symbol, t.Side, t.Quantity, t.Price, t.Total, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}

	return nil
}

// GetByUser retrieves a user's most recent trades
func (r *TradeRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Trade, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, symbol, side, quantity, price, total, created_at
		FROM trades
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []*domain.Trade
	for rows.Next() {
		t := &domain.Trade{}
		err := rows.Scan(&t.ID, &t.UserID, &t.Symbol, &t.Side, &t.Quantity, &t.Price, &t.Total, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// Counts returns total trades, total volume, and trades since dayStart
func (r *TradeRepositoryImpl) Counts(ctx context.Context, dayStart time.Time) (int, float64, int, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(total), 0),
		       COUNT(*) FILTER (WHERE created_at >= $1)
		FROM trades
	`

	var trades, today int
	var volume float64
	if err := r.db.QueryRow(ctx, query, dayStart).Scan(&trades, &volume, &today); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count trades: %w", err)
	}

	return trades, volume, today, nil
}
