package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserListParams holds the directory query state: free-text search,
// status/role filters, sort key and direction, page index and size.
// Pagination is server-driven; the client trusts the reported totals.
type UserListParams struct {
	Search    string
	Status    Status
	Role      Role
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// UserPage is one page of the user directory
type UserPage struct {
	Users []*User
	Total int
	Pages int
	Page  int
	Limit int
}

// UserCounts holds per-status aggregate counts for the stats dashboard
type UserCounts struct {
	Total    int
	Active   int
	Pending  int
	NewToday int
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List retrieves one page of the user directory
	List(ctx context.Context, params UserListParams) (*UserPage, error)

	// UpdateStatus updates status and approval flag in one statement
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, approved bool) error

	// UpdateBalances updates cash balance, portfolio value, and trade count
	UpdateBalances(ctx context.Context, id uuid.UUID, cash, portfolio float64, trades int) error

	// UpdatePortfolioValue refreshes the cached portfolio value only
	UpdatePortfolioValue(ctx context.Context, id uuid.UUID, portfolio float64) error

	// TouchLogin records a successful login timestamp
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// TouchSeen records presence for a set of users
	TouchSeen(ctx context.Context, ids []uuid.UUID, at time.Time) error

	// Counts returns aggregate user counters since the given day start
	Counts(ctx context.Context, dayStart time.Time) (*UserCounts, error)
}

// StockRepository defines the interface for stock data operations
type StockRepository interface {
	Create(ctx context.Context, stock *Stock) error
	GetByID(ctx context.Context, id uuid.UUID) (*Stock, error)
	GetBySymbol(ctx context.Context, symbol string) (*Stock, error)
	GetAll(ctx context.Context) ([]*Stock, error)
	GetActive(ctx context.Context) ([]*Stock, error)
	Update(ctx context.Context, stock *Stock) error
	UpdatePrice(ctx context.Context, id uuid.UUID, price, dayChange float64) error
	SetStatus(ctx context.Context, id uuid.UUID, status StockStatus) error
}

// CompetitionRepository defines the interface for competition operations
type CompetitionRepository interface {
	Create(ctx context.Context, c *Competition) error
	GetByID(ctx context.Context, id uuid.UUID) (*Competition, error)
	GetAll(ctx context.Context) ([]*Competition, error)
	Update(ctx context.Context, c *Competition) error
}

// ReportRepository defines the interface for report operations
type ReportRepository interface {
	Create(ctx context.Context, r *Report) error
	GetRecent(ctx context.Context, limit int) ([]*Report, error)
}

// AuditLogRepository defines the interface for audit log operations
type AuditLogRepository interface {
	Save(ctx context.Context, entry *AuditLog) error
	GetPage(ctx context.Context, page, limit int) ([]*AuditLog, int, error)
}

// HoldingRepository defines the interface for portfolio holdings
type HoldingRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*Holding, error)
	GetByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (*Holding, error)
	GetBySymbol(ctx context.Context, symbol string) ([]*Holding, error)
	Upsert(ctx context.Context, h *Holding) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TradeRepository defines the interface for executed trades
type TradeRepository interface {
	Save(ctx context.Context, t *Trade) error
	GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Trade, error)

	// Counts returns total trades, total volume, and trades since dayStart
	Counts(ctx context.Context, dayStart time.Time) (trades int, volume float64, today int, err error)
}
