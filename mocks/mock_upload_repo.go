package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"complyhub/internal/domain"
)

// MockUploadRepo is a mock implementation of port.UploadRepository.
type MockUploadRepo struct {
	mock.Mock
}

func (m *MockUploadRepo) Create(ctx context.Context, up *domain.ComplianceUpload) error {
	args := m.Called(ctx, up)
	return args.Error(0)
}

func (m *MockUploadRepo) GetByID(ctx context.Context, startupID, uploadID uuid.UUID) (*domain.ComplianceUpload, error) {
	args := m.Called(ctx, startupID, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceUpload), args.Error(1)
}

func (m *MockUploadRepo) ListByTask(ctx context.Context, startupID uuid.UUID, taskID string) ([]domain.ComplianceUpload, error) {
	args := m.Called(ctx, startupID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplianceUpload), args.Error(1)
}

func (m *MockUploadRepo) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.ComplianceUpload, error) {
	args := m.Called(ctx, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplianceUpload), args.Error(1)
}

func (m *MockUploadRepo) Delete(ctx context.Context, startupID, uploadID uuid.UUID) error {
	args := m.Called(ctx, startupID, uploadID)
	return args.Error(0)
}
