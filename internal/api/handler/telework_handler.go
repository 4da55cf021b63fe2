package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/dto"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/service"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/response"
)

// TeleworkHandler serves the telework profile and override endpoints.
type TeleworkHandler struct {
	teleworkSvc service.TeleworkService
}

// NewTeleworkHandler builds the TeleworkHandler.
func NewTeleworkHandler(teleworkSvc service.TeleworkService) *TeleworkHandler {
	return &TeleworkHandler{teleworkSvc: teleworkSvc}
}

// ── profiles ──

// GetProfile handles GET /api/v1/telework/profiles/:userId.
// Lazily creates the default profile on first access.
func (h *TeleworkHandler) GetProfile(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		response.BadRequest(c, 10001, "user id must not be empty")
		return
	}

	profile, err := h.teleworkSvc.GetOrCreateProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.OK(c, profile)
}

// CreateProfile handles POST /api/v1/telework/profiles.
func (h *TeleworkHandler) CreateProfile(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, _ := MustGetUserID(c)

	profile, err := h.teleworkSvc.CreateProfile(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.Created(c, profile)
}

// UpdateProfile handles PUT /api/v1/telework/profiles/:userId.
func (h *TeleworkHandler) UpdateProfile(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		response.BadRequest(c, 10001, "user id must not be empty")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.teleworkSvc.UpdateProfile(c.Request.Context(), userID, &req, callerID)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.OK(c, profile)
}

// ── overrides ──

// RequestOverride handles POST /api/v1/telework/overrides.
func (h *TeleworkHandler) RequestOverride(c *gin.Context) {
	var req dto.RequestOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	override, err := h.teleworkSvc.RequestOverride(c.Request.Context(), &req, callerID, callerRole)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.Created(c, override)
}

// Validate handles POST /api/v1/telework/overrides/validate (dry-run).
func (h *TeleworkHandler) Validate(c *gin.Context) {
	var req dto.ValidateOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, 14001, "invalid date, expected YYYY-MM-DD")
		return
	}

	result := h.teleworkSvc.ValidateOverrideRequest(c.Request.Context(), req.UserID, date, req.Mode)
	response.OK(c, result)
}

// ListOverrides handles GET /api/v1/telework/overrides.
func (h *TeleworkHandler) ListOverrides(c *gin.Context) {
	var q dto.OverrideQueryRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	overrides, err := h.teleworkSvc.GetOverrides(c.Request.Context(), &q)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.OK(c, gin.H{"list": overrides})
}

// ListUserOverrides handles GET /api/v1/telework/overrides/user/:userId.
func (h *TeleworkHandler) ListUserOverrides(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		response.BadRequest(c, 10001, "user id must not be empty")
		return
	}

	var start, end *time.Time
	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, 14001, "invalid start date")
			return
		}
		start = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, 14001, "invalid end date")
			return
		}
		end = &t
	}

	overrides, err := h.teleworkSvc.GetUserOverrides(c.Request.Context(), userID, start, end)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.OK(c, gin.H{"list": overrides})
}

// ListPendingOverrides handles GET /api/v1/telework/overrides/pending.
func (h *TeleworkHandler) ListPendingOverrides(c *gin.Context) {
	approverID, _ := MustGetUserID(c)

	overrides, err := h.teleworkSvc.GetPendingOverrides(c.Request.Context(), approverID)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.OK(c, gin.H{"list": overrides})
}

// ApproveOverride handles PUT /api/v1/telework/overrides/:id/approve.
func (h *TeleworkHandler) ApproveOverride(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "override id must not be empty")
		return
	}

	approverID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	override, err := h.teleworkSvc.ApproveOverride(c.Request.Context(), id, approverID)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.OK(c, override)
}

// RejectOverride handles PUT /api/v1/telework/overrides/:id/reject.
func (h *TeleworkHandler) RejectOverride(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "override id must not be empty")
		return
	}

	var req dto.RejectOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	approverID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	override, err := h.teleworkSvc.RejectOverride(c.Request.Context(), id, approverID, req.RejectionReason)
	if err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.OK(c, override)
}

// DeleteOverride handles DELETE /api/v1/telework/overrides/:id.
func (h *TeleworkHandler) DeleteOverride(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "override id must not be empty")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.teleworkSvc.DeleteOverride(c.Request.Context(), id, callerID, callerRole); err != nil {
		h.handleTeleworkError(c, err)
		return
	}

	response.OK(c, nil)
}

// CleanupExpired handles POST /api/v1/telework/overrides/cleanup.
func (h *TeleworkHandler) CleanupExpired(c *gin.Context) {
	deleted, err := h.teleworkSvc.CleanupExpiredOverrides(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.CleanupResponse{Deleted: deleted})
}

// handleTeleworkError maps telework module errors to HTTP responses.
func (h *TeleworkHandler) handleTeleworkError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		response.NotFound(c, 14002, "telework profile not found")
	case errors.Is(err, service.ErrProfileAlreadyExists):
		response.Conflict(c, 14003, "telework profile already exists")
	case errors.Is(err, service.ErrTeleworkUserNotFound):
		response.NotFound(c, 12001, "user not found")
	case errors.Is(err, service.ErrOverrideNotFound):
		response.NotFound(c, 14004, "telework override not found")
	case errors.Is(err, service.ErrOverrideAlreadyProcessed):
		response.BadRequest(c, 14005, err.Error())
	case errors.Is(err, service.ErrRejectionReasonRequired):
		response.BadRequest(c, 14006, "rejection reason is required")
	case errors.Is(err, service.ErrTeleworkForbidden):
		response.Forbidden(c, 14007, "not allowed to act on this user's telework data")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14001, "invalid date, expected YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
