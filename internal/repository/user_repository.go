package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"papertrade/internal/domain"
)

const userColumns = `
	id, username, display_name, email, COALESCE(phone, ''), password_hash,
	role, status, approved, cash_balance, portfolio_value, trade_count,
	last_login_at, last_seen_at, created_at, updated_at
`

// sortColumns whitelists the directory sort keys. Anything else falls
// back to created_at.
var sortColumns = map[string]string{
	"username":        "username",
	"email":           "email",
	"role":            "role",
	"status":          "status",
	"portfolio_value": "portfolio_value",
	"trade_count":     "trade_count",
	"created_at":      "created_at",
	"last_login_at":   "last_login_at",
}

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create creates a new user
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, username, display_name, email, phone, password_hash,
			role, status, approved, cash_balance, portfolio_value, trade_count, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13, $13
		)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.DisplayName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.Approved,
		user.CashBalance,
		user.PortfolioValue,
		user.TradeCount,
		user.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return domain.ErrEmailTaken
			}
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.Approved,
		&user.CashBalance,
		&user.PortfolioValue,
		&user.TradeCount,
		&user.LastLoginAt,
		&user.LastSeenAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a user by username
func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

// pageCount returns how many pages a result set of total rows spans at
// the given page size. A partial last page still counts.
func pageCount(total, limit int) int {
	return (total + limit - 1) / limit
}

// List retrieves one page of the user directory. Filters, sort, and
// pagination are applied server-side; the reported total and page count
// are authoritative.
func (r *UserRepositoryImpl) List(ctx context.Context, params domain.UserListParams) (*domain.UserPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 10
	}

	var conds []string
	var args []interface{}

	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		p := fmt.Sprintf("$%d", len(args))
		conds = append(conds, fmt.Sprintf("(username ILIKE %s OR display_name ILIKE %s OR email ILIKE %s)", p, p, p))
	}
	if params.Status != "" {
		args = append(args, params.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.Role != "" {
		args = append(args, params.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	sortCol, ok := sortColumns[params.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		order = "ASC"
	}

	offset := (params.Page - 1) * params.Limit
	args = append(args, params.Limit, offset)
	query := fmt.Sprintf(
		"SELECT %s FROM users%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		userColumns, where, sortCol, order, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return &domain.UserPage{
		Users: users,
		Total: total,
		Pages: pageCount(total, params.Limit),
		Page:  params.Page,
		Limit: params.Limit,
	}, nil
}

// UpdateStatus updates status and approval flag in one statement
func (r *UserRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, approved bool) error {
	query := `
		UPDATE users
		SET status = $1, approved = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := r.db.Exec(ctx, query, status, approved, id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// UpdateBalances updates cash balance, portfolio value, and trade count
func (r *UserRepositoryImpl) UpdateBalances(ctx context.Context, id uuid.UUID, cash, portfolio float64, trades int) error {
	query := `
		UPDATE users
		SET cash_balance = $1, portfolio_value = $2, trade_count = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := r.db.Exec(ctx, query, cash, portfolio, trades, id)
	if err != nil {
		return fmt.Errorf("failed to update user balances: %w", err)
	}

	return nil
}

// UpdatePortfolioValue refreshes the cached portfolio value only
func (r *UserRepositoryImpl) UpdatePortfolioValue(ctx context.Context, id uuid.UUID, portfolio float64) error {
	query := `
		UPDATE users
		SET portfolio_value = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, portfolio, id)
	if err != nil {
		return fmt.Errorf("failed to update portfolio value: %w", err)
	}

	return nil
}

// TouchLogin records a successful login timestamp
func (r *UserRepositoryImpl) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE users
		SET last_login_at = $1, last_seen_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}

	return nil
}

// TouchSeen records presence for a set of users
func (r *UserRepositoryImpl) TouchSeen(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query := `UPDATE users SET last_seen_at = $1 WHERE id = ANY($2)`

	_, err := r.db.Exec(ctx, query, at, ids)
	if err != nil {
		return fmt.Errorf("failed to record presence: %w", err)
	}

	return nil
}

// Counts returns aggregate user counters since the given day start
func (r *UserRepositoryImpl) Counts(ctx context.Context, dayStart time.Time) (*domain.UserCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active'),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE created_at >= $1)
		FROM users
		WHERE status <> 'deleted'
	`

	counts := &domain.UserCounts{}
	err := r.db.QueryRow(ctx, query, dayStart).Scan(
		&counts.Total,
		&counts.Active,
		&counts.Pending,
		&counts.NewToday,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return counts, nil
}
