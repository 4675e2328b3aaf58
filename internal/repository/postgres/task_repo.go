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

type taskRepo struct {
	db *sqlx.DB
}

// NewTaskRepo creates a new PostgreSQL-backed ComplianceTaskRepository.
func NewTaskRepo(db *sqlx.DB) port.ComplianceTaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) GenerateForStartup(ctx context.Context, startupID uuid.UUID) ([]domain.GeneratedTask, error) {
	var rows []domain.GeneratedTask
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM generate_compliance_tasks_for_startup($1)", startupID)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GenerateForStartup: %w", err)
	}
	return rows, nil
}

func (r *taskRepo) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.ComplianceTaskRecord, error) {
	var recs []domain.ComplianceTaskRecord
	err := r.db.SelectContext(ctx, &recs,
		"SELECT * FROM compliance_tasks WHERE startup_id = $1 ORDER BY year DESC, task_name",
		startupID)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByStartup: %w", err)
	}
	return recs, nil
}

func (r *taskRepo) GetByTaskID(ctx context.Context, startupID uuid.UUID, taskID string) (*domain.ComplianceTaskRecord, error) {
	var rec domain.ComplianceTaskRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM compliance_tasks WHERE startup_id = $1 AND task_id = $2",
		startupID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taskRepo.GetByTaskID: %w", err)
	}
	return &rec, nil
}

func (r *taskRepo) Upsert(ctx context.Context, rec *domain.ComplianceTaskRecord) error {
	now := time.Now().UTC()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now

	// Existing rows keep their verification state; only the materialized
	// metadata is refreshed.
	query := `INSERT INTO compliance_tasks
		(id, startup_id, task_id, entity_identifier, entity_display_name, year,
		 task_name, ca_required, cs_required, ca_status, cs_status, is_applicable,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (startup_id, task_id) DO UPDATE SET
		 entity_identifier = EXCLUDED.entity_identifier,
		 entity_display_name = EXCLUDED.entity_display_name,
		 year = EXCLUDED.year,
		 task_name = EXCLUDED.task_name,
		 ca_required = EXCLUDED.ca_required,
		 cs_required = EXCLUDED.cs_required,
		 updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.StartupID, rec.TaskID, rec.EntityIdentifier, rec.EntityDisplayName,
		rec.Year, rec.TaskName, rec.CARequired, rec.CSRequired, rec.CAStatus,
		rec.CSStatus, rec.IsApplicable, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("taskRepo.Upsert: %w", err)
	}
	return nil
}

func (r *taskRepo) UpdateStatus(ctx context.Context, startupID uuid.UUID, taskID string, party domain.VerificationParty, status domain.VerificationStatus) error {
	column := "ca_status"
	if party == domain.PartyCS {
		column = "cs_status"
	}
	query := fmt.Sprintf(
		"UPDATE compliance_tasks SET %s = $1, updated_at = $2 WHERE startup_id = $3 AND task_id = $4",
		column)

	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), startupID, taskID)
	if err != nil {
		return fmt.Errorf("taskRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepo) SetApplicability(ctx context.Context, startupID uuid.UUID, taskID string, applicable bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE compliance_tasks SET is_applicable = $1, updated_at = $2 WHERE startup_id = $3 AND task_id = $4",
		applicable, time.Now().UTC(), startupID, taskID)
	if err != nil {
		return fmt.Errorf("taskRepo.SetApplicability: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepo) DeleteByStartup(ctx context.Context, startupID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM compliance_tasks WHERE startup_id = $1", startupID)
	if err != nil {
		return fmt.Errorf("taskRepo.DeleteByStartup: %w", err)
	}
	return nil
}
