package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/dto"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/service"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/response"
)

// TeamRuleHandler serves the team telework rule endpoints.
type TeamRuleHandler struct {
	ruleSvc service.TeamRuleService
}

// NewTeamRuleHandler builds the TeamRuleHandler.
func NewTeamRuleHandler(ruleSvc service.TeamRuleService) *TeamRuleHandler {
	return &TeamRuleHandler{ruleSvc: ruleSvc}
}

// CreateRule handles POST /api/v1/telework/rules.
func (h *TeamRuleHandler) CreateRule(c *gin.Context) {
	var req dto.CreateTeamRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rule, err := h.ruleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTeamRuleError(c, err)
		return
	}

	response.Created(c, rule)
}

// GetRule handles GET /api/v1/telework/rules/:id.
func (h *TeamRuleHandler) GetRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "rule id must not be empty")
		return
	}

	rule, err := h.ruleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTeamRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// ListRules handles GET /api/v1/telework/rules.
// An optional teamId query parameter restricts the listing to one team.
func (h *TeamRuleHandler) ListRules(c *gin.Context) {
	teamID := c.Query("teamId")

	rules, err := h.ruleSvc.List(c.Request.Context(), teamID)
	if err != nil {
		h.handleTeamRuleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rules})
}

// UpdateRule handles PUT /api/v1/telework/rules/:id.
func (h *TeamRuleHandler) UpdateRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "rule id must not be empty")
		return
	}

	var req dto.UpdateTeamRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	rule, err := h.ruleSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTeamRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// DeleteRule handles DELETE /api/v1/telework/rules/:id.
func (h *TeamRuleHandler) DeleteRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "rule id must not be empty")
		return
	}

	if err := h.ruleSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTeamRuleError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTeamRuleError maps team rule module errors to HTTP responses.
func (h *TeamRuleHandler) handleTeamRuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamRuleNotFound):
		response.NotFound(c, 15001, "team telework rule not found")
	case errors.Is(err, service.ErrInvalidRecurrence):
		response.BadRequest(c, 15002, "invalid recurrence definition")
	case errors.Is(err, service.ErrTeamRuleUnknownRef):
		response.NotFound(c, 13001, "referenced team not found")
	default:
		response.InternalError(c)
	}
}
