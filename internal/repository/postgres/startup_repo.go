package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"complyhub/internal/domain"
	"complyhub/internal/port"
)

type startupRepo struct {
	db *sqlx.DB
}

// NewStartupRepo creates a new PostgreSQL-backed StartupRepository.
func NewStartupRepo(db *sqlx.DB) port.StartupRepository {
	return &startupRepo{db: db}
}

func (r *startupRepo) Create(ctx context.Context, s *domain.Startup) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.ComplianceStatus == "" {
		s.ComplianceStatus = domain.CompliancePending
	}

	query := `INSERT INTO startups
		(id, name, country_of_registration, company_type, registration_date,
		 compliance_status, contact_name, contact_email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.CountryOfRegistration, s.CompanyType, s.RegistrationDate,
		s.ComplianceStatus, s.ContactName, s.ContactEmail, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("startupRepo.Create: %w", err)
	}
	return nil
}

func (r *startupRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Startup, error) {
	var s domain.Startup
	err := r.db.GetContext(ctx, &s, "SELECT * FROM startups WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("startupRepo.GetByID: %w", err)
	}
	return &s, nil
}

func (r *startupRepo) List(ctx context.Context, offset, limit int) ([]domain.Startup, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM startups WHERE is_active"); err != nil {
		return nil, 0, fmt.Errorf("startupRepo.List count: %w", err)
	}

	var startups []domain.Startup
	err := r.db.SelectContext(ctx, &startups,
		"SELECT * FROM startups WHERE is_active ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("startupRepo.List: %w", err)
	}
	return startups, total, nil
}

func (r *startupRepo) Update(ctx context.Context, s *domain.Startup) error {
	s.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE startups SET name = $1, country_of_registration = $2, company_type = $3,
		 registration_date = $4, contact_name = $5, contact_email = $6, is_active = $7,
		 updated_at = $8 WHERE id = $9`,
		s.Name, s.CountryOfRegistration, s.CompanyType, s.RegistrationDate,
		s.ContactName, s.ContactEmail, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("startupRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *startupRepo) UpdateComplianceStatus(ctx context.Context, id uuid.UUID, status domain.ComplianceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE startups SET compliance_status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("startupRepo.UpdateComplianceStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *startupRepo) ListSubsidiaries(ctx context.Context, startupID uuid.UUID) ([]domain.Subsidiary, error) {
	var subs []domain.Subsidiary
	err := r.db.SelectContext(ctx, &subs,
		"SELECT * FROM subsidiaries WHERE startup_id = $1 ORDER BY created_at", startupID)
	if err != nil {
		return nil, fmt.Errorf("startupRepo.ListSubsidiaries: %w", err)
	}
	return subs, nil
}

func (r *startupRepo) ReplaceSubsidiaries(ctx context.Context, startupID uuid.UUID, subs []domain.Subsidiary) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("startupRepo.ReplaceSubsidiaries begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM subsidiaries WHERE startup_id = $1", startupID); err != nil {
		return fmt.Errorf("startupRepo.ReplaceSubsidiaries delete: %w", err)
	}
	for i := range subs {
		sub := &subs[i]
		if sub.ID == uuid.Nil {
			sub.ID = uuid.New()
		}
		sub.StartupID = startupID
		sub.CreatedAt = time.Now().UTC()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO subsidiaries (id, startup_id, country, ca_code, cs_code, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			sub.ID, sub.StartupID, sub.Country, sub.CACode, sub.CSCode, sub.CreatedAt)
		if err != nil {
			return fmt.Errorf("startupRepo.ReplaceSubsidiaries insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("startupRepo.ReplaceSubsidiaries commit: %w", err)
	}
	return nil
}

func (r *startupRepo) ListInternationalOps(ctx context.Context, startupID uuid.UUID) ([]domain.InternationalOperation, error) {
	var ops []domain.InternationalOperation
	err := r.db.SelectContext(ctx, &ops,
		"SELECT * FROM international_operations WHERE startup_id = $1 ORDER BY created_at", startupID)
	if err != nil {
		return nil, fmt.Errorf("startupRepo.ListInternationalOps: %w", err)
	}
	return ops, nil
}

func (r *startupRepo) ReplaceInternationalOps(ctx context.Context, startupID uuid.UUID, ops []domain.InternationalOperation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("startupRepo.ReplaceInternationalOps begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM international_operations WHERE startup_id = $1", startupID); err != nil {
		return fmt.Errorf("startupRepo.ReplaceInternationalOps delete: %w", err)
	}
	for i := range ops {
		op := &ops[i]
		if op.ID == uuid.Nil {
			op.ID = uuid.New()
		}
		op.StartupID = startupID
		op.CreatedAt = time.Now().UTC()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO international_operations (id, startup_id, country, start_date, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			op.ID, op.StartupID, op.Country, op.StartDate, op.CreatedAt)
		if err != nil {
			return fmt.Errorf("startupRepo.ReplaceInternationalOps insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("startupRepo.ReplaceInternationalOps commit: %w", err)
	}
	return nil
}
