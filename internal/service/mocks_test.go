package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"papertrade/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, params domain.UserListParams) (*domain.UserPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserPage), args.Error(1)
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status, approved bool) error {
	args := m.Called(ctx, id, status, approved)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateBalances(ctx context.Context, id uuid.UUID, cash, portfolio float64, trades int) error {
	args := m.Called(ctx, id, cash, portfolio, trades)
	return args.Error(0)
}

func (m *mockUserRepo) UpdatePortfolioValue(ctx context.Context, id uuid.UUID, portfolio float64) error {
	args := m.Called(ctx, id, portfolio)
	return args.Error(0)
}

func (m *mockUserRepo) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockUserRepo) TouchSeen(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

func (m *mockUserRepo) Counts(ctx context.Context, dayStart time.Time) (*domain.UserCounts, error) {
	args := m.Called(ctx, dayStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCounts), args.Error(1)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Save(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockAuditRepo) GetPage(ctx context.Context, page, limit int) ([]*domain.AuditLog, int, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.AuditLog), args.Int(1), args.Error(2)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type mockStockRepo struct {
	mock.Mock
}

func (m *mockStockRepo) Create(ctx context.Context, stock *domain.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *mockStockRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *mockStockRepo) GetBySymbol(ctx context.Context, symbol string) (*domain.Stock, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stock), args.Error(1)
}

func (m *mockStockRepo) GetAll(ctx context.Context) ([]*domain.Stock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Stock), args.Error(1)
}

func (m *mockStockRepo) GetActive(ctx context.Context) ([]*domain.Stock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Stock), args.Error(1)
}

func (m *mockStockRepo) Update(ctx context.Context, stock *domain.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *mockStockRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price, dayChange float64) error {
	args := m.Called(ctx, id, price, dayChange)
	return args.Error(0)
}

func (m *mockStockRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.StockStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type mockHoldingRepo struct {
	mock.Mock
}

func (m *mockHoldingRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

func (m *mockHoldingRepo) GetByUserAndSymbol(ctx context.Context, userID uuid.UUID, symbol string) (*domain.Holding, error) {
	args := m.Called(ctx, userID, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *mockHoldingRepo) GetBySymbol(ctx context.Context, symbol string) ([]*domain.Holding, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

func (m *mockHoldingRepo) Upsert(ctx context.Context, h *domain.Holding) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *mockHoldingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTradeRepo struct {
	mock.Mock
}

func (m *mockTradeRepo) Save(ctx context.Context, t *domain.Trade) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTradeRepo) GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Trade, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Trade), args.Error(1)
}

func (m *mockTradeRepo) Counts(ctx context.Context, dayStart time.Time) (int, float64, int, error) {
	args := m.Called(ctx, dayStart)
	return args.Int(0), args.Get(1).(float64), args.Int(2), args.Error(3)
}
