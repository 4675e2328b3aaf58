package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complyhub/internal/domain"
	"complyhub/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrStartupInactive):
		return http.StatusForbidden, "STARTUP_INACTIVE", "startup is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrMissingFileOrURL):
		return http.StatusBadRequest, "MISSING_FILE_OR_URL", "provide either a file or an external document URL"
	case errors.Is(err, domain.ErrUnknownCountry):
		return http.StatusBadRequest, "UNKNOWN_COUNTRY", "country is not recognized"
	case errors.Is(err, domain.ErrTaskMetadataMissing):
		return http.StatusConflict, "TASK_METADATA_MISSING", "task has no persisted metadata; resynchronize the profile first"
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusConflict, "INVALID_STATUS_TRANSITION", "status transition not allowed from the current status"
	case errors.Is(err, domain.ErrWrongVerificationParty):
		return http.StatusForbidden, "WRONG_VERIFICATION_PARTY", "role may not edit this verification column"
	case errors.Is(err, domain.ErrStatusConstraint):
		return http.StatusConflict, "STATUS_CONSTRAINT", "status value rejected by the status store"
	case errors.Is(err, domain.ErrSyncInProgress):
		return http.StatusConflict, "SYNC_IN_PROGRESS", "a synchronization is already running for this startup"
	case errors.Is(err, domain.ErrTaskNotApplicable):
		return http.StatusConflict, "TASK_NOT_APPLICABLE", "task is marked not applicable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts user ID and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (userID uuid.UUID, role domain.UserRole, ok bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return userID, role, true
}

// resolveStartupID determines which startup a request targets. Startup users
// are pinned to their own startup; verifier and admin users pass it in the path.
func resolveStartupID(c *gin.Context, role domain.UserRole) (uuid.UUID, bool) {
	if role == domain.RoleStartup {
		id, ok := middleware.GetStartupID(c)
		if !ok {
			RespondError(c, http.StatusForbidden, "FORBIDDEN", "user is not linked to a startup")
			return uuid.Nil, false
		}
		if param := c.Param("startupID"); param != "" && param != id.String() {
			RespondError(c, http.StatusForbidden, "FORBIDDEN", "cannot access another startup")
			return uuid.Nil, false
		}
		return id, true
	}

	id, err := uuid.Parse(c.Param("startupID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid startup ID")
		return uuid.Nil, false
	}
	return id, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
