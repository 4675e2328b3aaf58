package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"complyhub/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyComplianceStatusChange(ctx context.Context, toEmail, toName, startupName string, status domain.ComplianceStatus) error {
	args := m.Called(ctx, toEmail, toName, startupName, status)
	return args.Error(0)
}
