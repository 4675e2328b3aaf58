package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complyhub/internal/domain"
	"complyhub/internal/service"
)

// ComplianceHandler handles compliance checklist endpoints.
type ComplianceHandler struct {
	complianceService service.ComplianceService
	exportService     service.ExportService
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceService service.ComplianceService, exportService service.ExportService) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService, exportService: exportService}
}

// ListTasks handles GET /api/v1/startups/:startupID/tasks
// @Summary List compliance tasks
// @Description Materialize and reconcile the startup's full compliance checklist, grouped by entity
// @Tags compliance
// @Produce json
// @Param startupID path string true "Startup ID"
// @Success 200 {object} Response{data=service.TaskListResult} "Reconciled checklist"
// @Failure 404 {object} ErrorResponseBody "Startup not found"
// @Failure 409 {object} ErrorResponseBody "Synchronization in progress"
// @Security BearerAuth
// @Router /startups/{startupID}/tasks [get]
func (h *ComplianceHandler) ListTasks(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	result, err := h.complianceService.LoadTasks(c.Request.Context(), startupID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// UpdateStatus handles PATCH /api/v1/startups/:startupID/tasks/:taskID/status
// @Summary Update a task's verification status
// @Description Apply an explicit verifier status action on one party's column
// @Tags compliance
// @Accept json
// @Produce json
// @Param startupID path string true "Startup ID"
// @Param taskID path string true "Task ID"
// @Param request body UpdateStatusRequest true "Party and target status"
// @Success 200 {object} Response{data=MessageResponse} "Status updated"
// @Failure 403 {object} ErrorResponseBody "Wrong verification party"
// @Failure 409 {object} ErrorResponseBody "Invalid transition or missing metadata"
// @Security BearerAuth
// @Router /startups/{startupID}/tasks/{taskID}/status [patch]
func (h *ComplianceHandler) UpdateStatus(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !req.Party.Valid() {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "party must be ca or cs")
		return
	}
	if !req.Status.Valid() {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown status value")
		return
	}

	input := service.StatusUpdateInput{
		StartupID: startupID,
		TaskID:    c.Param("taskID"),
		Party:     req.Party,
		Status:    req.Status,
		Role:      role,
	}
	if err := h.complianceService.UpdateTaskStatus(c.Request.Context(), input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "status updated"})
}

// SetApplicability handles PATCH /api/v1/startups/:startupID/tasks/:taskID/applicability
// @Summary Mark a task applicable or not applicable
// @Tags compliance
// @Accept json
// @Produce json
// @Param startupID path string true "Startup ID"
// @Param taskID path string true "Task ID"
// @Param request body SetApplicabilityRequest true "Applicability flag"
// @Success 200 {object} Response{data=MessageResponse} "Applicability updated"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Security BearerAuth
// @Router /startups/{startupID}/tasks/{taskID}/applicability [patch]
func (h *ComplianceHandler) SetApplicability(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	var req SetApplicabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.IsApplicable == nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "is_applicable is required")
		return
	}

	if err := h.complianceService.SetApplicability(c.Request.Context(), startupID, c.Param("taskID"), *req.IsApplicable, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "applicability updated"})
}

// Sync handles POST /api/v1/startups/:startupID/sync
// @Summary Synchronize task rows with the startup's profile
// @Description Upserts status rows when the entity-defining profile changed since the last sync
// @Tags compliance
// @Produce json
// @Param startupID path string true "Startup ID"
// @Success 200 {object} Response{data=SyncResponse} "Sync result"
// @Failure 409 {object} ErrorResponseBody "Synchronization in progress"
// @Security BearerAuth
// @Router /startups/{startupID}/sync [post]
func (h *ComplianceHandler) Sync(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	synced, err := h.complianceService.SyncProfile(c.Request.Context(), startupID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"synced": synced})
}

// Regenerate handles POST /api/v1/startups/:startupID/regenerate
// @Summary Force-regenerate all task rows
// @Description Drops persisted task rows and rebuilds them from the current profile. Verification statuses and applicability overrides are reset.
// @Tags compliance
// @Produce json
// @Param startupID path string true "Startup ID"
// @Success 200 {object} Response{data=MessageResponse} "Tasks regenerated"
// @Failure 409 {object} ErrorResponseBody "Synchronization in progress"
// @Security BearerAuth
// @Router /startups/{startupID}/regenerate [post]
func (h *ComplianceHandler) Regenerate(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	if err := h.complianceService.ForceRegenerate(c.Request.Context(), startupID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "tasks regenerated"})
}

// Export handles GET /api/v1/startups/:startupID/export
// @Summary Export the checklist as an Excel workbook
// @Tags compliance
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param startupID path string true "Startup ID"
// @Success 200 {file} binary "Excel workbook"
// @Failure 404 {object} ErrorResponseBody "Startup not found"
// @Security BearerAuth
// @Router /startups/{startupID}/export [get]
func (h *ComplianceHandler) Export(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	buf, filename, err := h.exportService.ExportChecklist(c.Request.Context(), startupID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// UpdateStatusRequest represents the status update request body.
type UpdateStatusRequest struct {
	Party  domain.VerificationParty  `json:"party" binding:"required" example:"ca"`
	Status domain.VerificationStatus `json:"status" binding:"required" example:"verified"`
}

// SetApplicabilityRequest represents the applicability update request body.
type SetApplicabilityRequest struct {
	IsApplicable *bool `json:"is_applicable" binding:"required" example:"false"`
}

// SyncResponse represents the sync result body.
type SyncResponse struct {
	Synced bool `json:"synced" example:"true"`
}
