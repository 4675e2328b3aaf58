package port

import (
	"context"

	"complyhub/internal/domain"
)

// Notifier informs a startup contact that their aggregate compliance status
// changed. Delivery is best-effort; callers log and swallow failures.
type Notifier interface {
	NotifyComplianceStatusChange(ctx context.Context, toEmail, toName, startupName string, status domain.ComplianceStatus) error
}
