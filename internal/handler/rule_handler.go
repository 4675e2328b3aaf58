package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"complyhub/internal/service"
)

// RuleHandler handles compliance rule administration endpoints.
type RuleHandler struct {
	ruleService service.RuleService
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleService service.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// Create handles POST /api/v1/rules
// @Summary Create a compliance rule
// @Tags rules
// @Accept json
// @Produce json
// @Param request body service.RuleInput true "Rule definition"
// @Success 201 {object} Response{data=domain.ComplianceRule} "Rule created"
// @Failure 400 {object} ErrorResponseBody "Unknown country or invalid enum value"
// @Security BearerAuth
// @Router /rules [post]
func (h *RuleHandler) Create(c *gin.Context) {
	var input service.RuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rule, err := h.ruleService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rule)
}

// Get handles GET /api/v1/rules/:id
// @Summary Get a compliance rule
// @Tags rules
// @Produce json
// @Param id path int true "Rule ID"
// @Success 200 {object} Response{data=domain.ComplianceRule} "Rule"
// @Failure 404 {object} ErrorResponseBody "Rule not found"
// @Security BearerAuth
// @Router /rules/{id} [get]
func (h *RuleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule ID")
		return
	}

	rule, err := h.ruleService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rule)
}

// List handles GET /api/v1/rules
// @Summary List compliance rules
// @Tags rules
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ComplianceRule,meta=PagMeta} "Rules"
// @Security BearerAuth
// @Router /rules [get]
func (h *RuleHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	rules, total, err := h.ruleService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, rules, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/rules/:id
// @Summary Update a compliance rule
// @Tags rules
// @Accept json
// @Produce json
// @Param id path int true "Rule ID"
// @Param request body service.RuleInput true "Rule definition"
// @Success 200 {object} Response{data=domain.ComplianceRule} "Updated rule"
// @Failure 404 {object} ErrorResponseBody "Rule not found"
// @Security BearerAuth
// @Router /rules/{id} [put]
func (h *RuleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule ID")
		return
	}

	var input service.RuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rule, err := h.ruleService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rule)
}

// Delete handles DELETE /api/v1/rules/:id
// @Summary Deactivate a compliance rule
// @Description Soft-deletes the rule. Already materialized tasks keep their rows.
// @Tags rules
// @Produce json
// @Param id path int true "Rule ID"
// @Success 200 {object} Response{data=MessageResponse} "Rule deactivated"
// @Failure 404 {object} ErrorResponseBody "Rule not found"
// @Security BearerAuth
// @Router /rules/{id} [delete]
func (h *RuleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid rule ID")
		return
	}

	if err := h.ruleService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "rule deactivated"})
}
