package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"complyhub/internal/compliance"
	"complyhub/internal/domain"
	"complyhub/internal/port"
)

// TaskListResult is the reconciled view of a startup's compliance checklist.
type TaskListResult struct {
	Tasks            []domain.TaskInstance    `json:"tasks"`
	Groups           []compliance.EntityGroup `json:"groups"`
	ComplianceStatus domain.ComplianceStatus  `json:"compliance_status"`
}

// StatusUpdateInput is the DTO for an explicit verifier status action.
type StatusUpdateInput struct {
	StartupID uuid.UUID
	TaskID    string
	Party     domain.VerificationParty
	Status    domain.VerificationStatus
	Role      domain.UserRole
}

// ComplianceService drives task materialization, reconciliation, status
// mutations, and the aggregate roll-up for a startup.
type ComplianceService interface {
	LoadTasks(ctx context.Context, startupID uuid.UUID, viewerRole domain.UserRole) (*TaskListResult, error)
	UpdateTaskStatus(ctx context.Context, input StatusUpdateInput) error
	SetApplicability(ctx context.Context, startupID uuid.UUID, taskID string, applicable bool, role domain.UserRole) error
	SyncProfile(ctx context.Context, startupID uuid.UUID) (bool, error)
	ForceRegenerate(ctx context.Context, startupID uuid.UUID) error
	RecomputeAggregate(ctx context.Context, startupID uuid.UUID, viewerRole domain.UserRole) (domain.ComplianceStatus, error)
}

type complianceService struct {
	reconciler *compliance.Reconciler
	tasks      port.ComplianceTaskRepository
	startups   port.StartupRepository
	notifier   port.Notifier
}

// NewComplianceService creates a new ComplianceService implementation.
func NewComplianceService(
	reconciler *compliance.Reconciler,
	tasks port.ComplianceTaskRepository,
	startups port.StartupRepository,
	notifier port.Notifier,
) ComplianceService {
	return &complianceService{
		reconciler: reconciler,
		tasks:      tasks,
		startups:   startups,
		notifier:   notifier,
	}
}

func (s *complianceService) LoadTasks(ctx context.Context, startupID uuid.UUID, viewerRole domain.UserRole) (*TaskListResult, error) {
	tasks, err := s.reconciler.Load(ctx, startupID)
	if err != nil {
		return nil, err
	}

	startup, err := s.startups.GetByID(ctx, startupID)
	if err != nil {
		return nil, fmt.Errorf("complianceService.LoadTasks: %w", err)
	}
	subs, subsErr := s.startups.ListSubsidiaries(ctx, startupID)
	if subsErr != nil {
		log.Printf("complianceService.LoadTasks: loading subsidiaries for %s: %v", startupID, subsErr)
	}
	ops, opsErr := s.startups.ListInternationalOps(ctx, startupID)
	if opsErr != nil {
		log.Printf("complianceService.LoadTasks: loading international ops for %s: %v", startupID, opsErr)
	}

	// Filtering against a partially loaded entity set would drop live groups
	// as stale, so the filter only runs when both lists loaded cleanly.
	var expected []string
	if subsErr == nil && opsErr == nil {
		expected = compliance.ExpectedEntityNames(startup, subs, ops)
	}
	status := s.persistAggregate(ctx, startup, tasks, viewerRole)

	return &TaskListResult{
		Tasks:            tasks,
		Groups:           compliance.GroupByEntity(tasks, expected),
		ComplianceStatus: status,
	}, nil
}

func (s *complianceService) UpdateTaskStatus(ctx context.Context, input StatusUpdateInput) error {
	rec, err := s.tasks.GetByTaskID(ctx, input.StartupID, input.TaskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// An upsert cannot synthesize entity/period metadata, so a
			// status write without a persisted row is a hard error.
			return domain.ErrTaskMetadataMissing
		}
		return fmt.Errorf("complianceService.UpdateTaskStatus: %w", err)
	}

	current := rec.CAStatus
	if input.Party == domain.PartyCS {
		current = rec.CSStatus
	}
	if err := compliance.ValidateVerifierTransition(input.Role, input.Party, current, input.Status); err != nil {
		return err
	}

	if err := s.tasks.UpdateStatus(ctx, input.StartupID, input.TaskID, input.Party, input.Status); err != nil {
		return classifyStatusErr(err)
	}

	if _, err := s.RecomputeAggregate(ctx, input.StartupID, input.Role); err != nil {
		log.Printf("complianceService.UpdateTaskStatus: aggregate recompute for %s: %v", input.StartupID, err)
	}
	return nil
}

func (s *complianceService) SetApplicability(ctx context.Context, startupID uuid.UUID, taskID string, applicable bool, role domain.UserRole) error {
	if role != domain.RoleStartup && role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.tasks.SetApplicability(ctx, startupID, taskID, applicable); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrTaskMetadataMissing
		}
		return fmt.Errorf("complianceService.SetApplicability: %w", err)
	}

	if _, err := s.RecomputeAggregate(ctx, startupID, role); err != nil {
		log.Printf("complianceService.SetApplicability: aggregate recompute for %s: %v", startupID, err)
	}
	return nil
}

func (s *complianceService) SyncProfile(ctx context.Context, startupID uuid.UUID) (bool, error) {
	return s.reconciler.SyncProfile(ctx, startupID, false)
}

func (s *complianceService) ForceRegenerate(ctx context.Context, startupID uuid.UUID) error {
	_, err := s.reconciler.SyncProfile(ctx, startupID, true)
	return err
}

// RecomputeAggregate derives the role-scoped roll-up and persists it with
// write suppression: the startup record is only touched when the status
// actually changed. Persistence failures are logged and swallowed.
func (s *complianceService) RecomputeAggregate(ctx context.Context, startupID uuid.UUID, viewerRole domain.UserRole) (domain.ComplianceStatus, error) {
	tasks, err := s.reconciler.Load(ctx, startupID)
	if err != nil {
		return "", err
	}
	startup, err := s.startups.GetByID(ctx, startupID)
	if err != nil {
		return "", fmt.Errorf("complianceService.RecomputeAggregate: %w", err)
	}
	return s.persistAggregate(ctx, startup, tasks, viewerRole), nil
}

func (s *complianceService) persistAggregate(ctx context.Context, startup *domain.Startup, tasks []domain.TaskInstance, viewerRole domain.UserRole) domain.ComplianceStatus {
	status := compliance.ComputeAggregate(tasks, viewerRole)
	if status == startup.ComplianceStatus {
		return status
	}

	if err := s.startups.UpdateComplianceStatus(ctx, startup.ID, status); err != nil {
		log.Printf("complianceService.persistAggregate: updating status for %s: %v", startup.ID, err)
		return status
	}
	log.Printf("complianceService.persistAggregate: startup %s compliance %s -> %s", startup.ID, startup.ComplianceStatus, status)

	if s.notifier != nil && startup.ContactEmail != "" {
		if err := s.notifier.NotifyComplianceStatusChange(ctx, startup.ContactEmail, startup.ContactName, startup.Name, status); err != nil {
			log.Printf("complianceService.persistAggregate: notifying %s: %v", startup.ContactEmail, err)
		}
	}
	return status
}

// classifyStatusErr distinguishes store constraint rejections (for example a
// schema that does not yet accept a status value) from generic failures, so
// callers can surface a more actionable message.
func classifyStatusErr(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "constraint") || strings.Contains(msg, "invalid input value for enum") {
		return fmt.Errorf("%w: %v", domain.ErrStatusConstraint, err)
	}
	return err
}
