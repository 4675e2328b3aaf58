package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserInactive            = errors.New("user is inactive")
	ErrStartupInactive         = errors.New("startup is inactive")
	ErrDuplicateEmail          = errors.New("email already exists")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed            = errors.New("file upload to storage failed")
	ErrMissingFileOrURL        = errors.New("either a file or an external document URL is required")
	ErrUnknownCountry          = errors.New("country has no ISO code mapping")
	ErrTaskMetadataMissing     = errors.New("task metadata missing; cannot upsert status row")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrWrongVerificationParty  = errors.New("role may not edit this verification column")
	ErrStatusConstraint        = errors.New("status value rejected by a store constraint")
	ErrSyncInProgress          = errors.New("compliance synchronization already in progress for this startup")
	ErrTaskNotApplicable       = errors.New("task is marked not applicable")
)
