package port

import (
	"context"

	"github.com/google/uuid"

	"complyhub/internal/domain"
)

// StartupRepository defines the contract for startup profile persistence.
type StartupRepository interface {
	Create(ctx context.Context, s *domain.Startup) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Startup, error)
	List(ctx context.Context, offset, limit int) ([]domain.Startup, int, error)
	Update(ctx context.Context, s *domain.Startup) error
	UpdateComplianceStatus(ctx context.Context, id uuid.UUID, status domain.ComplianceStatus) error
	ListSubsidiaries(ctx context.Context, startupID uuid.UUID) ([]domain.Subsidiary, error)
	ReplaceSubsidiaries(ctx context.Context, startupID uuid.UUID, subs []domain.Subsidiary) error
	ListInternationalOps(ctx context.Context, startupID uuid.UUID) ([]domain.InternationalOperation, error)
	ReplaceInternationalOps(ctx context.Context, startupID uuid.UUID, ops []domain.InternationalOperation) error
}

// ComplianceRuleRepository defines the contract for the rule store. The
// reconciliation engine only reads; rule administration writes.
type ComplianceRuleRepository interface {
	Create(ctx context.Context, rule *domain.ComplianceRule) error
	GetByID(ctx context.Context, id int64) (*domain.ComplianceRule, error)
	GetByCountryAndCompanyType(ctx context.Context, countryCode, companyType string) ([]domain.ComplianceRule, error)
	List(ctx context.Context, offset, limit int) ([]domain.ComplianceRule, int, error)
	Update(ctx context.Context, rule *domain.ComplianceRule) error
	Delete(ctx context.Context, id int64) error
}

// ComplianceTaskRepository defines the contract for the per-task status store.
// All writes are upserts on the (startup_id, task_id) unique key.
type ComplianceTaskRepository interface {
	// GenerateForStartup invokes the server-side generation function, the
	// preferred materialization path.
	GenerateForStartup(ctx context.Context, startupID uuid.UUID) ([]domain.GeneratedTask, error)
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.ComplianceTaskRecord, error)
	GetByTaskID(ctx context.Context, startupID uuid.UUID, taskID string) (*domain.ComplianceTaskRecord, error)
	Upsert(ctx context.Context, rec *domain.ComplianceTaskRecord) error
	UpdateStatus(ctx context.Context, startupID uuid.UUID, taskID string, party domain.VerificationParty, status domain.VerificationStatus) error
	SetApplicability(ctx context.Context, startupID uuid.UUID, taskID string, applicable bool) error
	DeleteByStartup(ctx context.Context, startupID uuid.UUID) error
}

// UploadRepository defines the contract for evidence upload rows.
type UploadRepository interface {
	Create(ctx context.Context, up *domain.ComplianceUpload) error
	GetByID(ctx context.Context, startupID, uploadID uuid.UUID) (*domain.ComplianceUpload, error)
	ListByTask(ctx context.Context, startupID uuid.UUID, taskID string) ([]domain.ComplianceUpload, error)
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.ComplianceUpload, error)
	Delete(ctx context.Context, startupID, uploadID uuid.UUID) error
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
