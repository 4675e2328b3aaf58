package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complyhub/internal/service"
)

// StartupHandler handles startup profile endpoints.
type StartupHandler struct {
	startupService service.StartupService
}

// NewStartupHandler creates a new StartupHandler.
func NewStartupHandler(startupService service.StartupService) *StartupHandler {
	return &StartupHandler{startupService: startupService}
}

// Create handles POST /api/v1/startups
// @Summary Onboard a startup
// @Description Create a startup profile with its subsidiaries and international operations. Task rows are synchronized immediately.
// @Tags startups
// @Accept json
// @Produce json
// @Param request body service.CreateStartupInput true "Startup profile"
// @Success 201 {object} Response{data=service.StartupProfile} "Startup created"
// @Failure 400 {object} ErrorResponseBody "Unknown country or validation error"
// @Security BearerAuth
// @Router /startups [post]
func (h *StartupHandler) Create(c *gin.Context) {
	var input service.CreateStartupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	profile, err := h.startupService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, profile)
}

// Get handles GET /api/v1/startups/:startupID
// @Summary Get a startup profile
// @Tags startups
// @Produce json
// @Param startupID path string true "Startup ID"
// @Success 200 {object} Response{data=service.StartupProfile} "Startup profile"
// @Failure 404 {object} ErrorResponseBody "Startup not found"
// @Security BearerAuth
// @Router /startups/{startupID} [get]
func (h *StartupHandler) Get(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	startupID, ok := resolveStartupID(c, role)
	if !ok {
		return
	}

	profile, err := h.startupService.Get(c.Request.Context(), startupID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}

// List handles GET /api/v1/startups
// @Summary List startups
// @Tags startups
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Startup,meta=PagMeta} "Startups"
// @Security BearerAuth
// @Router /startups [get]
func (h *StartupHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	startups, total, err := h.startupService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, startups, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/startups/:startupID
// @Summary Update a startup profile
// @Description Update profile fields. Entity-defining changes trigger a task resynchronization.
// @Tags startups
// @Accept json
// @Produce json
// @Param startupID path string true "Startup ID"
// @Param request body service.UpdateStartupInput true "Fields to update"
// @Success 200 {object} Response{data=service.StartupProfile} "Updated profile"
// @Failure 404 {object} ErrorResponseBody "Startup not found"
// @Security BearerAuth
// @Router /startups/{startupID} [put]
func (h *StartupHandler) Update(c *gin.Context) {
	startupID, err := uuid.Parse(c.Param("startupID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid startup ID")
		return
	}

	var input service.UpdateStartupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	profile, err := h.startupService.Update(c.Request.Context(), startupID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}

// pagination parses offset/limit query parameters with sane bounds.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
