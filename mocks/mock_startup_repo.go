package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"complyhub/internal/domain"
)

// MockStartupRepo is a mock implementation of port.StartupRepository.
type MockStartupRepo struct {
	mock.Mock
}

func (m *MockStartupRepo) Create(ctx context.Context, s *domain.Startup) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStartupRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Startup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Startup), args.Error(1)
}

func (m *MockStartupRepo) List(ctx context.Context, offset, limit int) ([]domain.Startup, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Startup), args.Int(1), args.Error(2)
}

func (m *MockStartupRepo) Update(ctx context.Context, s *domain.Startup) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStartupRepo) UpdateComplianceStatus(ctx context.Context, id uuid.UUID, status domain.ComplianceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStartupRepo) ListSubsidiaries(ctx context.Context, startupID uuid.UUID) ([]domain.Subsidiary, error) {
	args := m.Called(ctx, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subsidiary), args.Error(1)
}

func (m *MockStartupRepo) ReplaceSubsidiaries(ctx context.Context, startupID uuid.UUID, subs []domain.Subsidiary) error {
	args := m.Called(ctx, startupID, subs)
	return args.Error(0)
}

func (m *MockStartupRepo) ListInternationalOps(ctx context.Context, startupID uuid.UUID) ([]domain.InternationalOperation, error) {
	args := m.Called(ctx, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InternationalOperation), args.Error(1)
}

func (m *MockStartupRepo) ReplaceInternationalOps(ctx context.Context, startupID uuid.UUID, ops []domain.InternationalOperation) error {
	args := m.Called(ctx, startupID, ops)
	return args.Error(0)
}
