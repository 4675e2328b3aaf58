package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"complyhub/internal/compliance"
	"complyhub/internal/domain"
	"complyhub/internal/port"
)

// SubsidiaryInput describes one subsidiary entity in a profile write.
type SubsidiaryInput struct {
	Country string `json:"country" binding:"required"`
	CACode  string `json:"ca_code"`
	CSCode  string `json:"cs_code"`
}

// InternationalOpInput describes one international operation in a profile write.
type InternationalOpInput struct {
	Country   string     `json:"country" binding:"required"`
	StartDate *time.Time `json:"start_date"`
}

// CreateStartupInput is the DTO for onboarding a startup.
type CreateStartupInput struct {
	Name                  string                 `json:"name" binding:"required"`
	CountryOfRegistration string                 `json:"country_of_registration" binding:"required"`
	CompanyType           string                 `json:"company_type" binding:"required"`
	RegistrationDate      time.Time              `json:"registration_date" binding:"required"`
	ContactName           string                 `json:"contact_name"`
	ContactEmail          string                 `json:"contact_email" binding:"omitempty,email"`
	Subsidiaries          []SubsidiaryInput      `json:"subsidiaries"`
	InternationalOps      []InternationalOpInput `json:"international_operations"`
}

// UpdateStartupInput is the DTO for profile updates. Nil slices leave the
// corresponding entity set unchanged; empty slices clear it.
type UpdateStartupInput struct {
	Name                  *string                `json:"name"`
	CountryOfRegistration *string                `json:"country_of_registration"`
	CompanyType           *string                `json:"company_type"`
	RegistrationDate      *time.Time             `json:"registration_date"`
	ContactName           *string                `json:"contact_name"`
	ContactEmail          *string                `json:"contact_email"`
	Subsidiaries          []SubsidiaryInput      `json:"subsidiaries"`
	InternationalOps      []InternationalOpInput `json:"international_operations"`
}

// StartupProfile is a startup plus its owned entities.
type StartupProfile struct {
	Startup          domain.Startup                  `json:"startup"`
	Subsidiaries     []domain.Subsidiary             `json:"subsidiaries"`
	InternationalOps []domain.InternationalOperation `json:"international_operations"`
}

// StartupService manages startup profiles. Profile writes that touch
// entity-defining fields trigger a task resynchronization.
type StartupService interface {
	Create(ctx context.Context, input CreateStartupInput) (*StartupProfile, error)
	Get(ctx context.Context, id uuid.UUID) (*StartupProfile, error)
	List(ctx context.Context, offset, limit int) ([]domain.Startup, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStartupInput) (*StartupProfile, error)
}

type startupService struct {
	startups   port.StartupRepository
	reconciler *compliance.Reconciler
}

// NewStartupService creates a new StartupService implementation.
func NewStartupService(startups port.StartupRepository, reconciler *compliance.Reconciler) StartupService {
	return &startupService{
		startups:   startups,
		reconciler: reconciler,
	}
}

func (s *startupService) Create(ctx context.Context, input CreateStartupInput) (*StartupProfile, error) {
	country := strings.TrimSpace(input.CountryOfRegistration)
	if _, ok := compliance.CountryCode(country); !ok && !compliance.IsCountryCode(country) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCountry, country)
	}

	startup := &domain.Startup{
		ID:                    uuid.New(),
		Name:                  strings.TrimSpace(input.Name),
		CountryOfRegistration: country,
		CompanyType:           strings.TrimSpace(input.CompanyType),
		RegistrationDate:      input.RegistrationDate,
		ComplianceStatus:      domain.CompliancePending,
		ContactName:           strings.TrimSpace(input.ContactName),
		ContactEmail:          strings.ToLower(strings.TrimSpace(input.ContactEmail)),
		IsActive:              true,
	}
	if err := s.startups.Create(ctx, startup); err != nil {
		return nil, fmt.Errorf("startupService.Create: %w", err)
	}

	if err := s.startups.ReplaceSubsidiaries(ctx, startup.ID, toSubsidiaries(startup.ID, input.Subsidiaries)); err != nil {
		return nil, fmt.Errorf("startupService.Create: subsidiaries: %w", err)
	}
	if err := s.startups.ReplaceInternationalOps(ctx, startup.ID, toInternationalOps(startup.ID, input.InternationalOps)); err != nil {
		return nil, fmt.Errorf("startupService.Create: international ops: %w", err)
	}

	s.resync(ctx, startup.ID)
	return s.Get(ctx, startup.ID)
}

func (s *startupService) Get(ctx context.Context, id uuid.UUID) (*StartupProfile, error) {
	startup, err := s.startups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subs, err := s.startups.ListSubsidiaries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("startupService.Get: subsidiaries: %w", err)
	}
	ops, err := s.startups.ListInternationalOps(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("startupService.Get: international ops: %w", err)
	}
	return &StartupProfile{
		Startup:          *startup,
		Subsidiaries:     subs,
		InternationalOps: ops,
	}, nil
}

func (s *startupService) List(ctx context.Context, offset, limit int) ([]domain.Startup, int, error) {
	return s.startups.List(ctx, offset, limit)
}

func (s *startupService) Update(ctx context.Context, id uuid.UUID, input UpdateStartupInput) (*StartupProfile, error) {
	startup, err := s.startups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		startup.Name = strings.TrimSpace(*input.Name)
	}
	if input.CountryOfRegistration != nil {
		country := strings.TrimSpace(*input.CountryOfRegistration)
		if _, ok := compliance.CountryCode(country); !ok && !compliance.IsCountryCode(country) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCountry, country)
		}
		startup.CountryOfRegistration = country
	}
	if input.CompanyType != nil {
		startup.CompanyType = strings.TrimSpace(*input.CompanyType)
	}
	if input.RegistrationDate != nil {
		startup.RegistrationDate = *input.RegistrationDate
	}
	if input.ContactName != nil {
		startup.ContactName = strings.TrimSpace(*input.ContactName)
	}
	if input.ContactEmail != nil {
		startup.ContactEmail = strings.ToLower(strings.TrimSpace(*input.ContactEmail))
	}

	if err := s.startups.Update(ctx, startup); err != nil {
		return nil, fmt.Errorf("startupService.Update: %w", err)
	}
	if input.Subsidiaries != nil {
		if err := s.startups.ReplaceSubsidiaries(ctx, id, toSubsidiaries(id, input.Subsidiaries)); err != nil {
			return nil, fmt.Errorf("startupService.Update: subsidiaries: %w", err)
		}
	}
	if input.InternationalOps != nil {
		if err := s.startups.ReplaceInternationalOps(ctx, id, toInternationalOps(id, input.InternationalOps)); err != nil {
			return nil, fmt.Errorf("startupService.Update: international ops: %w", err)
		}
	}

	s.resync(ctx, id)
	return s.Get(ctx, id)
}

// resync runs a signature-gated task synchronization after a profile write.
// A concurrent session is logged and skipped, not surfaced: the next load or
// write picks up the change.
func (s *startupService) resync(ctx context.Context, id uuid.UUID) {
	if _, err := s.reconciler.SyncProfile(ctx, id, false); err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			log.Printf("startupService.resync: startup %s busy, sync skipped", id)
			return
		}
		log.Printf("startupService.resync: startup %s: %v", id, err)
	}
}

func toSubsidiaries(startupID uuid.UUID, in []SubsidiaryInput) []domain.Subsidiary {
	out := make([]domain.Subsidiary, 0, len(in))
	for _, sub := range in {
		out = append(out, domain.Subsidiary{
			ID:        uuid.New(),
			StartupID: startupID,
			Country:   strings.TrimSpace(sub.Country),
			CACode:    strings.TrimSpace(sub.CACode),
			CSCode:    strings.TrimSpace(sub.CSCode),
		})
	}
	return out
}

func toInternationalOps(startupID uuid.UUID, in []InternationalOpInput) []domain.InternationalOperation {
	out := make([]domain.InternationalOperation, 0, len(in))
	for _, op := range in {
		out = append(out, domain.InternationalOperation{
			ID:        uuid.New(),
			StartupID: startupID,
			Country:   strings.TrimSpace(op.Country),
			StartDate: op.StartDate,
		})
	}
	return out
}
