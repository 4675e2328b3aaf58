package noop

import (
	"context"
	"log"

	"complyhub/internal/domain"
	"complyhub/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a no-op Notifier that logs status changes to stdout.
func NewNoopNotifier() port.Notifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyComplianceStatusChange(_ context.Context, toEmail, toName, startupName string, status domain.ComplianceStatus) error {
	log.Printf("[NOOP NOTIFY] Status change for %s: %s (to %s <%s>)", startupName, status, toName, toEmail)
	return nil
}
