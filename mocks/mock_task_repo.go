package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"complyhub/internal/domain"
)

// MockTaskRepo is a mock implementation of port.ComplianceTaskRepository.
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) GenerateForStartup(ctx context.Context, startupID uuid.UUID) ([]domain.GeneratedTask, error) {
	args := m.Called(ctx, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedTask), args.Error(1)
}

func (m *MockTaskRepo) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.ComplianceTaskRecord, error) {
	args := m.Called(ctx, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplianceTaskRecord), args.Error(1)
}

func (m *MockTaskRepo) GetByTaskID(ctx context.Context, startupID uuid.UUID, taskID string) (*domain.ComplianceTaskRecord, error) {
	args := m.Called(ctx, startupID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceTaskRecord), args.Error(1)
}

func (m *MockTaskRepo) Upsert(ctx context.Context, rec *domain.ComplianceTaskRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockTaskRepo) UpdateStatus(ctx context.Context, startupID uuid.UUID, taskID string, party domain.VerificationParty, status domain.VerificationStatus) error {
	args := m.Called(ctx, startupID, taskID, party, status)
	return args.Error(0)
}

func (m *MockTaskRepo) SetApplicability(ctx context.Context, startupID uuid.UUID, taskID string, applicable bool) error {
	args := m.Called(ctx, startupID, taskID, applicable)
	return args.Error(0)
}

func (m *MockTaskRepo) DeleteByStartup(ctx context.Context, startupID uuid.UUID) error {
	args := m.Called(ctx, startupID)
	return args.Error(0)
}
