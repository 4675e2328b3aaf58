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

type uploadRepo struct {
	db *sqlx.DB
}

// NewUploadRepo creates a new PostgreSQL-backed UploadRepository.
func NewUploadRepo(db *sqlx.DB) port.UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Create(ctx context.Context, up *domain.ComplianceUpload) error {
	up.CreatedAt = time.Now().UTC()

	query := `INSERT INTO compliance_uploads
		(id, startup_id, task_id, file_name, file_url, uploaded_by, file_size, file_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		up.ID, up.StartupID, up.TaskID, up.FileName, up.FileURL, up.UploadedBy,
		up.FileSize, up.FileType, up.CreatedAt)
	if err != nil {
		return fmt.Errorf("uploadRepo.Create: %w", err)
	}
	return nil
}

func (r *uploadRepo) GetByID(ctx context.Context, startupID, uploadID uuid.UUID) (*domain.ComplianceUpload, error) {
	var up domain.ComplianceUpload
	err := r.db.GetContext(ctx, &up,
		"SELECT * FROM compliance_uploads WHERE id = $1 AND startup_id = $2", uploadID, startupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("uploadRepo.GetByID: %w", err)
	}
	return &up, nil
}

func (r *uploadRepo) ListByTask(ctx context.Context, startupID uuid.UUID, taskID string) ([]domain.ComplianceUpload, error) {
	var ups []domain.ComplianceUpload
	err := r.db.SelectContext(ctx, &ups,
		`SELECT * FROM compliance_uploads
		 WHERE startup_id = $1 AND task_id = $2 ORDER BY created_at DESC`,
		startupID, taskID)
	if err != nil {
		return nil, fmt.Errorf("uploadRepo.ListByTask: %w", err)
	}
	return ups, nil
}

func (r *uploadRepo) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.ComplianceUpload, error) {
	var ups []domain.ComplianceUpload
	err := r.db.SelectContext(ctx, &ups,
		"SELECT * FROM compliance_uploads WHERE startup_id = $1 ORDER BY created_at DESC",
		startupID)
	if err != nil {
		return nil, fmt.Errorf("uploadRepo.ListByStartup: %w", err)
	}
	return ups, nil
}

func (r *uploadRepo) Delete(ctx context.Context, startupID, uploadID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM compliance_uploads WHERE id = $1 AND startup_id = $2", uploadID, startupID)
	if err != nil {
		return fmt.Errorf("uploadRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
