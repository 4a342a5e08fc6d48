package http

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

type mockCompetitionRepo struct {
	mock.Mock
}

func (m *mockCompetitionRepo) Create(ctx context.Context, comp *domain.Competition) error {
	args := m.Called(ctx, comp)
	return args.Error(0)
}

func (m *mockCompetitionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Competition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Competition), args.Error(1)
}

func (m *mockCompetitionRepo) GetAll(ctx context.Context) ([]*domain.Competition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Competition), args.Error(1)
}

func (m *mockCompetitionRepo) Update(ctx context.Context, comp *domain.Competition) error {
	args := m.Called(ctx, comp)
	return args.Error(0)
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
