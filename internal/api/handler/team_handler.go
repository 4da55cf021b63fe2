package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/dto"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/service"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/response"
)

// TeamHandler serves the team endpoints.
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler builds the TeamHandler.
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// CreateTeam handles POST /api/v1/teams.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, _ := MustGetUserID(c)

	team, err := h.teamSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, team)
}

// GetTeam handles GET /api/v1/teams/:id.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "team id must not be empty")
		return
	}

	team, err := h.teamSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, team)
}

// ListTeams handles GET /api/v1/teams.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": teams})
}

// UpdateTeam handles PUT /api/v1/teams/:id.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "team id must not be empty")
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	team, err := h.teamSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, team)
}

// DeleteTeam handles DELETE /api/v1/teams/:id.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "team id must not be empty")
		return
	}

	if err := h.teamSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTeamError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTeamError maps team module errors to HTTP responses.
func (h *TeamHandler) handleTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		response.NotFound(c, 13001, "team not found")
	default:
		response.InternalError(c)
	}
}
