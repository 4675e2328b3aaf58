package service

import (
	"context"
	"fmt"
	"strings"

	"complyhub/internal/compliance"
	"complyhub/internal/domain"
	"complyhub/internal/port"
)

// RuleInput is the DTO for rule creation and updates.
type RuleInput struct {
	CountryCode          string                      `json:"country_code" binding:"required"`
	CompanyType          string                      `json:"company_type" binding:"required"`
	Name                 string                      `json:"name" binding:"required"`
	Description          string                      `json:"description"`
	Frequency            domain.Frequency            `json:"frequency" binding:"required"`
	VerificationRequired domain.VerificationRequired `json:"verification_required" binding:"required"`
	CAType               string                      `json:"ca_type"`
	CSType               string                      `json:"cs_type"`
}

// RuleService administers the compliance rule catalog.
type RuleService interface {
	Create(ctx context.Context, input RuleInput) (*domain.ComplianceRule, error)
	Get(ctx context.Context, id int64) (*domain.ComplianceRule, error)
	List(ctx context.Context, offset, limit int) ([]domain.ComplianceRule, int, error)
	Update(ctx context.Context, id int64, input RuleInput) (*domain.ComplianceRule, error)
	Delete(ctx context.Context, id int64) error
}

type ruleService struct {
	rules port.ComplianceRuleRepository
}

// NewRuleService creates a new RuleService implementation.
func NewRuleService(rules port.ComplianceRuleRepository) RuleService {
	return &ruleService{rules: rules}
}

func (s *ruleService) Create(ctx context.Context, input RuleInput) (*domain.ComplianceRule, error) {
	rule, err := ruleFromInput(input)
	if err != nil {
		return nil, err
	}
	rule.IsActive = true
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("ruleService.Create: %w", err)
	}
	return rule, nil
}

func (s *ruleService) Get(ctx context.Context, id int64) (*domain.ComplianceRule, error) {
	return s.rules.GetByID(ctx, id)
}

func (s *ruleService) List(ctx context.Context, offset, limit int) ([]domain.ComplianceRule, int, error) {
	return s.rules.List(ctx, offset, limit)
}

func (s *ruleService) Update(ctx context.Context, id int64, input RuleInput) (*domain.ComplianceRule, error) {
	existing, err := s.rules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rule, err := ruleFromInput(input)
	if err != nil {
		return nil, err
	}
	rule.ID = id
	rule.IsActive = existing.IsActive
	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("ruleService.Update: %w", err)
	}
	return rule, nil
}

func (s *ruleService) Delete(ctx context.Context, id int64) error {
	return s.rules.Delete(ctx, id)
}

func ruleFromInput(input RuleInput) (*domain.ComplianceRule, error) {
	code := strings.ToUpper(strings.TrimSpace(input.CountryCode))
	if !compliance.IsCountryCode(code) {
		if mapped, ok := compliance.CountryCode(code); ok {
			code = mapped
		} else {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCountry, input.CountryCode)
		}
	}
	if !input.Frequency.Valid() {
		return nil, fmt.Errorf("invalid frequency %q", input.Frequency)
	}
	if !input.VerificationRequired.Valid() {
		return nil, fmt.Errorf("invalid verification requirement %q", input.VerificationRequired)
	}
	return &domain.ComplianceRule{
		CountryCode:          code,
		CompanyType:          strings.TrimSpace(input.CompanyType),
		Name:                 strings.TrimSpace(input.Name),
		Description:          strings.TrimSpace(input.Description),
		Frequency:            input.Frequency,
		VerificationRequired: input.VerificationRequired,
		CAType:               strings.TrimSpace(input.CAType),
		CSType:               strings.TrimSpace(input.CSType),
	}, nil
}
