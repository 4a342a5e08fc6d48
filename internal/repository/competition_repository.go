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

// CompetitionRepositoryImpl implements the CompetitionRepository interface
type CompetitionRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewCompetitionRepository creates a new CompetitionRepository
func NewCompetitionRepository(db *pgxpool.Pool) domain.CompetitionRepository {
	return &CompetitionRepositoryImpl{db: db}
}

// Create creates a new competition
func (r *CompetitionRepositoryImpl) Create(ctx context.Context, c *domain.Competition) error {
	query := `
		INSERT INTO competitions (id, name, status, starts_at, ends_at, prize_pool, participants, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Status, c.StartsAt, c.EndsAt, c.PrizePool, c.Participants, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create competition: %w", err)
	}

	return nil
}

func scanCompetition(row pgx.Row) (*domain.Competition, error) {
	c := &domain.Competition{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Status, &c.StartsAt, &c.EndsAt,
		&c.PrizePool, &c.Participants, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan competition: %w", err)
	}
	return c, nil
}

// GetByID retrieves a competition by ID
func (r *CompetitionRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Competition, error) {
	query := `
		SELECT id, name, status, starts_at, ends_at, prize_pool, participants, created_at, updated_at
		FROM competitions
		WHERE id = $1
	`
	return scanCompetition(r.db.QueryRow(ctx, query, id))
}

// GetAll retrieves all competitions, newest first
func (r *CompetitionRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Competition, error) {
	query := `
		SELECT id, name, status, starts_at, ends_at, prize_pool, participants, created_at, updated_at
		FROM competitions
		ORDER BY starts_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query competitions: %w", err)
	}
	defer rows.Close()

	var comps []*domain.Competition
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, err
		}
		comps = append(comps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating competitions: %w", err)
	}

	return comps, nil
}

// Update updates competition fields
func (r *CompetitionRepositoryImpl) Update(ctx context.Context, c *domain.Competition) error {
	query := `
		UPDATE competitions
		SET name = $1, status = $2, starts_at = $3, ends_at = $4, prize_pool = $5, participants = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := r.db.Exec(ctx, query,
		c.Name, c.Status, c.StartsAt, c.EndsAt, c.PrizePool, c.Participants, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update competition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}
