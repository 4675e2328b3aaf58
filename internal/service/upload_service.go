package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"complyhub/internal/compliance"
	"complyhub/internal/config"
	"complyhub/internal/domain"
	"complyhub/internal/port"
)

// ExternalFileType marks an upload row whose document lives on an external
// cloud drive rather than in the evidence bucket.
const ExternalFileType = "link"

// EvidenceUploadInput is the DTO for evidence upload requests. Exactly one of
// File or ExternalURL must be set.
type EvidenceUploadInput struct {
	StartupID   uuid.UUID
	TaskID      string
	UploadedBy  uuid.UUID
	File        multipart.File
	Header      *multipart.FileHeader
	ExternalURL string
}

// EvidenceUploadResult carries the persisted upload plus an optional warning
// when the linked status transition could not be applied.
type EvidenceUploadResult struct {
	Upload  *domain.ComplianceUpload `json:"upload"`
	Warning string                   `json:"warning,omitempty"`
}

// UploadService binds evidence documents to compliance tasks and drives the
// pending-to-submitted status transition.
type UploadService interface {
	Upload(ctx context.Context, input EvidenceUploadInput) (*EvidenceUploadResult, error)
	ListByTask(ctx context.Context, startupID uuid.UUID, taskID string) ([]domain.ComplianceUpload, error)
	Delete(ctx context.Context, startupID, uploadID uuid.UUID) (string, error)
}

type uploadService struct {
	uploads port.UploadRepository
	tasks   port.ComplianceTaskRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	uploads port.UploadRepository,
	tasks port.ComplianceTaskRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) UploadService {
	return &uploadService{
		uploads: uploads,
		tasks:   tasks,
		storage: storage,
		cfg:     cfg,
	}
}

func (s *uploadService) Upload(ctx context.Context, input EvidenceUploadInput) (*EvidenceUploadResult, error) {
	if rec, err := s.tasks.GetByTaskID(ctx, input.StartupID, input.TaskID); err == nil {
		if !domain.ResolveApplicable(rec.IsApplicable) {
			return nil, domain.ErrTaskNotApplicable
		}
	}

	var up *domain.ComplianceUpload
	var err error
	switch {
	case input.ExternalURL != "":
		up, err = s.linkExternal(ctx, input)
	case input.File != nil && input.Header != nil:
		up, err = s.uploadFile(ctx, input)
	default:
		return nil, domain.ErrMissingFileOrURL
	}
	if err != nil {
		return nil, err
	}

	// The document is attached even when the status transition fails; the
	// failure is surfaced as a warning, never rolled back.
	warning := ""
	if err := s.advanceOnUpload(ctx, input.StartupID, input.TaskID); err != nil {
		if errors.Is(err, domain.ErrStatusConstraint) {
			warning = "document attached, but the status store rejected the submitted status: " + err.Error()
		} else {
			warning = "document attached, but the task status could not be updated: " + err.Error()
		}
		log.Printf("uploadService.Upload: status transition for task %s: %v", input.TaskID, err)
	}

	return &EvidenceUploadResult{Upload: up, Warning: warning}, nil
}

// linkExternal persists an externally hosted document URL as-is, skipping
// object storage entirely.
func (s *uploadService) linkExternal(ctx context.Context, input EvidenceUploadInput) (*domain.ComplianceUpload, error) {
	parsed, err := url.ParseRequestURI(input.ExternalURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: invalid external URL", domain.ErrMissingFileOrURL)
	}

	name := filepath.Base(parsed.Path)
	if name == "." || name == "/" || name == "" {
		name = "external-document"
	}

	up := &domain.ComplianceUpload{
		ID:         uuid.New(),
		StartupID:  input.StartupID,
		TaskID:     input.TaskID,
		FileName:   name,
		FileURL:    input.ExternalURL,
		UploadedBy: input.UploadedBy,
		FileType:   ExternalFileType,
	}
	if err := s.uploads.Create(ctx, up); err != nil {
		return nil, fmt.Errorf("uploadService.linkExternal: %w", err)
	}
	return up, nil
}

func (s *uploadService) uploadFile(ctx context.Context, input EvidenceUploadInput) (*domain.ComplianceUpload, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte sniff so a renamed file cannot bypass the extension check.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	uploadID := uuid.New()
	key := fmt.Sprintf("startups/%s/tasks/%s/%s_%s",
		input.StartupID, input.TaskID, uploadID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("uploadService.uploadFile: storage upload for task %s: %v", input.TaskID, err)
		return nil, domain.ErrUploadFailed
	}

	up := &domain.ComplianceUpload{
		ID:         uploadID,
		StartupID:  input.StartupID,
		TaskID:     input.TaskID,
		FileName:   input.Header.Filename,
		FileURL:    out.Location,
		UploadedBy: input.UploadedBy,
		FileSize:   input.Header.Size,
		FileType:   string(fileType),
	}
	if err := s.uploads.Create(ctx, up); err != nil {
		return nil, fmt.Errorf("uploadService.uploadFile: %w", err)
	}
	return up, nil
}

// advanceOnUpload moves each required party's status from pending to
// submitted. Verified and rejected columns are never touched.
func (s *uploadService) advanceOnUpload(ctx context.Context, startupID uuid.UUID, taskID string) error {
	rec, err := s.tasks.GetByTaskID(ctx, startupID, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrTaskMetadataMissing
		}
		return err
	}

	for _, party := range []domain.VerificationParty{domain.PartyCA, domain.PartyCS} {
		required := rec.CARequired
		current := rec.CAStatus
		if party == domain.PartyCS {
			required = rec.CSRequired
			current = rec.CSStatus
		}
		if !required || !compliance.CanUploadTransition(current) {
			continue
		}
		if err := s.tasks.UpdateStatus(ctx, startupID, taskID, party, domain.StatusSubmitted); err != nil {
			return classifyStatusErr(err)
		}
	}
	return nil
}

func (s *uploadService) ListByTask(ctx context.Context, startupID uuid.UUID, taskID string) ([]domain.ComplianceUpload, error) {
	return s.uploads.ListByTask(ctx, startupID, taskID)
}

// Delete removes an upload row (and its stored object, best-effort). When no
// uploads remain for the task, a status still sitting at exactly submitted
// reverts to pending for each required party.
func (s *uploadService) Delete(ctx context.Context, startupID, uploadID uuid.UUID) (string, error) {
	up, err := s.uploads.GetByID(ctx, startupID, uploadID)
	if err != nil {
		return "", err
	}

	if up.FileType != ExternalFileType {
		if key, ok := s.objectKey(up.FileURL); ok {
			if err := s.storage.Delete(ctx, s.cfg.Bucket, key); err != nil {
				log.Printf("uploadService.Delete: removing object %s: %v", key, err)
			}
		}
	}

	if err := s.uploads.Delete(ctx, startupID, uploadID); err != nil {
		return "", err
	}

	remaining, err := s.uploads.ListByTask(ctx, startupID, up.TaskID)
	if err != nil {
		return "upload deleted, but remaining uploads could not be checked: " + err.Error(), nil
	}
	if len(remaining) > 0 {
		return "", nil
	}

	if err := s.revertOnDelete(ctx, startupID, up.TaskID); err != nil {
		log.Printf("uploadService.Delete: status reversion for task %s: %v", up.TaskID, err)
		return "upload deleted, but the task status could not be reverted: " + err.Error(), nil
	}
	return "", nil
}

// revertOnDelete moves submitted statuses back to pending for required
// parties. Verified and rejected are left untouched.
func (s *uploadService) revertOnDelete(ctx context.Context, startupID uuid.UUID, taskID string) error {
	rec, err := s.tasks.GetByTaskID(ctx, startupID, taskID)
	if err != nil {
		return err
	}

	for _, party := range []domain.VerificationParty{domain.PartyCA, domain.PartyCS} {
		required := rec.CARequired
		current := rec.CAStatus
		if party == domain.PartyCS {
			required = rec.CSRequired
			current = rec.CSStatus
		}
		if !required || !compliance.CanDeleteRevert(current) {
			continue
		}
		if err := s.tasks.UpdateStatus(ctx, startupID, taskID, party, domain.StatusPending); err != nil {
			return classifyStatusErr(err)
		}
	}
	return nil
}

// objectKey extracts the bucket key from an evidence object URL produced by
// the uploader. External URLs do not resolve to a key.
func (s *uploadService) objectKey(fileURL string) (string, bool) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", false
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if strings.HasPrefix(key, s.cfg.Bucket+"/") {
		key = strings.TrimPrefix(key, s.cfg.Bucket+"/")
	}
	if key == "" {
		return "", false
	}
	return key, strings.HasPrefix(key, "startups/")
}
