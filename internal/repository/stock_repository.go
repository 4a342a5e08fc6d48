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

const stockColumns = `id, symbol, name, last_price, day_change, prev_close, status, created_at, updated_at`

// StockRepositoryImpl implements the StockRepository interface
type StockRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(db *pgxpool.Pool) domain.StockRepository {
	return &StockRepositoryImpl{db: db}
}

// Create creates a new stock
func (r *StockRepositoryImpl) Create(ctx context.Context, stock *domain.Stock) error {
	query := `
		INSERT INTO stocks (id, symbol, name, last_price, day_change, prev_close, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	_, err := r.db.Exec(ctx, query,
		stock.ID,
		stock.Symbol,
		stock.Name,
		stock.LastPrice,
		stock.DayChange,
		stock.PrevClose,
		stock.Status,
		stock.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create stock: %w", err)
	}

	return nil
}

func scanStock(row pgx.Row) (*domain.Stock, error) {
	stock := &domain.Stock{}
	err := row.Scan(
		&stock.ID,
		&stock.Symbol,
		&stock.Name,
		&stock.LastPrice,
		&stock.DayChange,
		&stock.PrevClose,
		&stock.Status,
		&stock.CreatedAt,
		&stock.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan stock: %w", err)
	}
	return stock, nil
}

// GetByID retrieves a stock by ID
func (r *StockRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`
	return scanStock(r.db.QueryRow(ctx, query, id))
}

// GetBySymbol retrieves a stock by its ticker symbol
func (r *StockRepositoryImpl) GetBySymbol(ctx context.Context, symbol string) (*domain.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE symbol = $1`
	return scanStock(r.db.QueryRow(ctx, query, symbol))
}

func (r *StockRepositoryImpl) queryStocks(ctx context.Context, query string, args ...interface{}) ([]*domain.Stock, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	var stocks []*domain.Stock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stocks: %w", err)
	}

	return stocks, nil
}

// GetAll retrieves all stocks ordered by symbol
func (r *StockRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Stock, error) {
	return r.queryStocks(ctx, `SELECT `+stockColumns+` FROM stocks ORDER BY symbol ASC`)
}

// GetActive retrieves stocks that are open for trading
func (r *StockRepositoryImpl) GetActive(ctx context.Context) ([]*domain.Stock, error) {
	return r.queryStocks(ctx, `SELECT `+stockColumns+` FROM stocks WHERE status = $1 ORDER BY symbol ASC`, domain.StockActive)
}

// Update updates stock name, prices, and status
func (r *StockRepositoryImpl) Update(ctx context.Context, stock *domain.Stock) error {
	query := `
		UPDATE stocks
		SET name = $1, last_price = $2, day_change = $3, prev_close = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := r.db.Exec(ctx, query,
		stock.Name,
		stock.LastPrice,
		stock.DayChange,
		stock.PrevClose,
		stock.Status,
		stock.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UpdatePrice updates the quote written by the price ticker
func (r *StockRepositoryImpl) UpdatePrice(ctx context.Context, id uuid.UUID, price, dayChange float64) error {
	query := `
		UPDATE stocks
		SET last_price = $1, day_change = $2, updated_at = NOW()
		WHERE id = $3
	`

	_, err := r.db.Exec(ctx, query, price, dayChange, id)
	if err != nil {
		return fmt.Errorf("failed to update stock price: %w", err)
	}

	return nil
}

// SetStatus updates the trading state of a stock
func (r *StockRepositoryImpl) SetStatus(ctx context.Context, id uuid.UUID, status domain.StockStatus) error {
	query := `UPDATE stocks SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to set stock status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
