package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"complyhub/internal/domain"
	"complyhub/internal/port"
)

type ruleRepo struct {
	db *sqlx.DB
}

// NewRuleRepo creates a new PostgreSQL-backed ComplianceRuleRepository.
func NewRuleRepo(db *sqlx.DB) port.ComplianceRuleRepository {
	return &ruleRepo{db: db}
}

func (r *ruleRepo) Create(ctx context.Context, rule *domain.ComplianceRule) error {
	now := time.Now().UTC()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	query := `INSERT INTO compliance_rules
		(country_code, company_type, name, description, frequency,
		 verification_required, ca_type, cs_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.db.GetContext(ctx, &rule.ID, query,
		rule.CountryCode, rule.CompanyType, rule.Name, rule.Description, rule.Frequency,
		rule.VerificationRequired, rule.CAType, rule.CSType, rule.IsActive,
		rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ruleRepo.Create: %w", err)
	}
	return nil
}

func (r *ruleRepo) GetByID(ctx context.Context, id int64) (*domain.ComplianceRule, error) {
	var rule domain.ComplianceRule
	err := r.db.GetContext(ctx, &rule, "SELECT * FROM compliance_rules WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ruleRepo.GetByID: %w", err)
	}
	return &rule, nil
}

func (r *ruleRepo) GetByCountryAndCompanyType(ctx context.Context, countryCode, companyType string) ([]domain.ComplianceRule, error) {
	var rules []domain.ComplianceRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT * FROM compliance_rules
		 WHERE country_code = $1 AND company_type = $2 AND is_active
		 ORDER BY id`,
		countryCode, companyType)
	if err != nil {
		return nil, fmt.Errorf("ruleRepo.GetByCountryAndCompanyType: %w", err)
	}
	return rules, nil
}

func (r *ruleRepo) List(ctx context.Context, offset, limit int) ([]domain.ComplianceRule, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM compliance_rules"); err != nil {
		return nil, 0, fmt.Errorf("ruleRepo.List count: %w", err)
	}

	var rules []domain.ComplianceRule
	err := r.db.SelectContext(ctx, &rules,
		"SELECT * FROM compliance_rules ORDER BY country_code, company_type, id LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ruleRepo.List: %w", err)
	}
	return rules, total, nil
}

func (r *ruleRepo) Update(ctx context.Context, rule *domain.ComplianceRule) error {
	rule.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE compliance_rules SET country_code = $1, company_type = $2, name = $3,
		 description = $4, frequency = $5, verification_required = $6, ca_type = $7,
		 cs_type = $8, is_active = $9, updated_at = $10 WHERE id = $11`,
		rule.CountryCode, rule.CompanyType, rule.Name, rule.Description, rule.Frequency,
		rule.VerificationRequired, rule.CAType, rule.CSType, rule.IsActive,
		rule.UpdatedAt, rule.ID)
	if err != nil {
		return fmt.Errorf("ruleRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ruleRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE compliance_rules SET is_active = false, updated_at = $1 WHERE id = $2",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("ruleRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
