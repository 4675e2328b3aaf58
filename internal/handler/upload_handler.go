package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complyhub/internal/domain"
	"complyhub/internal/service"
)

// UploadHandler handles evidence upload endpoints.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /api/v1/startups/:startupID/tasks/:taskID/uploads
// @Summary Attach evidence to a task
// @Description Upload a document (PDF, JPG, PNG) or link an external URL. Required parties still at pending advance to submitted.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param startupID path string true "Startup ID"
// @Param taskID path string true "Task ID"
// @Param file formData file false "Evidence document"
// @Param external_url formData string false "Externally hosted document URL"
// @Success 201 {object} Response{data=service.EvidenceUploadResult} "Evidence attached"
// @Failure 400 {object} ErrorResponseBody "Missing file or URL, or unsupported type"
// @Failure 409 {object} ErrorResponseBody "Task not applicable"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /startups/{startupID}/tasks/{taskID}/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	input := service.EvidenceUploadInput{
		StartupID:   startupID,
		TaskID:      c.Param("taskID"),
		UploadedBy:  userID,
		ExternalURL: c.PostForm("external_url"),
	}

	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer func() { _ = file.Close() }()
		input.File = file
		input.Header = header
	}

	result, err := h.uploadService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/startups/:startupID/tasks/:taskID/uploads
// @Summary List evidence for a task
// @Tags uploads
// @Produce json
// @Param startupID path string true "Startup ID"
// @Param taskID path string true "Task ID"
// @Success 200 {object} Response{data=[]domain.ComplianceUpload} "Evidence uploads"
// @Security BearerAuth
// @Router /startups/{startupID}/tasks/{taskID}/uploads [get]
func (h *UploadHandler) List(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	uploads, err := h.uploadService.ListByTask(c.Request.Context(), startupID, c.Param("taskID"))
	if err != nil {
		HandleError(c, err)
		return
	}
	if uploads == nil {
		uploads = []domain.ComplianceUpload{}
	}

	RespondOK(c, uploads)
}

// Delete handles DELETE /api/v1/startups/:startupID/uploads/:uploadID
// @Summary Delete an evidence upload
// @Description Removes the upload. When it was the task's last evidence, submitted statuses revert to pending.
// @Tags uploads
// @Produce json
// @Param startupID path string true "Startup ID"
// @Param uploadID path string true "Upload ID"
// @Success 200 {object} Response{data=MessageResponse} "Upload deleted"
// @Failure 404 {object} ErrorResponseBody "Upload not found"
// @Security BearerAuth
// @Router /startups/{startupID}/uploads/{uploadID} [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	uploadID, err := uuid.Parse(c.Param("uploadID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid upload ID")
		return
	}

	warning, err := h.uploadService.Delete(c.Request.Context(), startupID, uploadID)
	if err != nil {
		HandleError(c, err)
		return
	}

	if warning != "" {
		c.JSON(http.StatusOK, APIResponse{
			Success: true,
			Data: gin.H{
				"message": "upload deleted",
				"warning": warning,
			},
		})
		return
	}

	RespondOK(c, gin.H{"message": "upload deleted"})
}
