package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"complyhub/internal/domain"
)

// MockRuleRepo is a mock implementation of port.ComplianceRuleRepository.
type MockRuleRepo struct {
	mock.Mock
}

func (m *MockRuleRepo) Create(ctx context.Context, rule *domain.ComplianceRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepo) GetByID(ctx context.Context, id int64) (*domain.ComplianceRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceRule), args.Error(1)
}

func (m *MockRuleRepo) GetByCountryAndCompanyType(ctx context.Context, countryCode, companyType string) ([]domain.ComplianceRule, error) {
	args := m.Called(ctx, countryCode, companyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplianceRule), args.Error(1)
}

func (m *MockRuleRepo) List(ctx context.Context, offset, limit int) ([]domain.ComplianceRule, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ComplianceRule), args.Int(1), args.Error(2)
}

func (m *MockRuleRepo) Update(ctx context.Context, rule *domain.ComplianceRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
