package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/dto"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/service"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── mock TeleworkService ──

type mockTeleworkService struct {
	profileResult   *dto.ProfileResponse
	profileErr      error
	validateResult  *dto.ValidationResult
	overrideResult  *dto.OverrideResponse
	overrideErr     error
	listResult      []dto.OverrideResponse
	listErr         error
	cleanupDeleted  int64
	cleanupErr      error
	rejectGotReason string
}

func (m *mockTeleworkService) CreateProfile(_ context.Context, _ *dto.CreateProfileRequest, _ string) (*dto.ProfileResponse, error) {
	return m.profileResult, m.profileErr
}
func (m *mockTeleworkService) GetOrCreateProfile(_ context.Context, _ string) (*dto.ProfileResponse, error) {
	return m.profileResult, m.profileErr
}
func (m *mockTeleworkService) UpdateProfile(_ context.Context, _ string, _ *dto.UpdateProfileRequest, _ string) (*dto.ProfileResponse, error) {
	return m.profileResult, m.profileErr
}
func (m *mockTeleworkService) ValidateOverrideRequest(_ context.Context, _ string, _ time.Time, _ string) *dto.ValidationResult {
	return m.validateResult
}
func (m *mockTeleworkService) RequestOverride(_ context.Context, _ *dto.RequestOverrideRequest, _, _ string) (*dto.OverrideResponse, error) {
	return m.overrideResult, m.overrideErr
}
func (m *mockTeleworkService) ApproveOverride(_ context.Context, _, _ string) (*dto.OverrideResponse, error) {
	return m.overrideResult, m.overrideErr
}
func (m *mockTeleworkService) RejectOverride(_ context.Context, _, _, reason string) (*dto.OverrideResponse, error) {
	m.rejectGotReason = reason
	return m.overrideResult, m.overrideErr
}
func (m *mockTeleworkService) DeleteOverride(_ context.Context, _, _, _ string) error {
	return m.overrideErr
}
func (m *mockTeleworkService) CleanupExpiredOverrides(_ context.Context) (int64, error) {
	return m.cleanupDeleted, m.cleanupErr
}
func (m *mockTeleworkService) GetOverrides(_ context.Context, _ *dto.OverrideQueryRequest) ([]dto.OverrideResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTeleworkService) GetUserOverrides(_ context.Context, _ string, _, _ *time.Time) ([]dto.OverrideResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTeleworkService) GetPendingOverrides(_ context.Context, _ string) ([]dto.OverrideResponse, error) {
	return m.listResult, m.listErr
}

// ── helpers ──

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing response body: %v", err)
	}
	return resp
}

// withAuth injects the context values the JWT middleware would set.
func withAuth(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

const handlerTestUserID = "11111111-1111-1111-1111-111111111111"

// ── telework handler ──

func TestTeleworkHandler_RequestOverride_Success(t *testing.T) {
	mock := &mockTeleworkService{
		overrideResult: &dto.OverrideResponse{
			ID:             handlerTestUserID + "_2025-06-04",
			UserID:         handlerTestUserID,
			Date:           "2025-06-04",
			Mode:           "remote",
			ApprovalStatus: "APPROVED",
		},
	}
	h := NewTeleworkHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/telework/overrides", jsonBody(dto.RequestOverrideRequest{
		UserID: handlerTestUserID,
		Date:   "2025-06-04",
		Mode:   "remote",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/telework/overrides", withAuth(handlerTestUserID, "USER"), h.RequestOverride)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestTeleworkHandler_RequestOverride_BadJSON(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/telework/overrides", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/telework/overrides", withAuth(handlerTestUserID, "USER"), h.RequestOverride)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTeleworkHandler_RequestOverride_Unauthenticated(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/telework/overrides", jsonBody(dto.RequestOverrideRequest{
		UserID: handlerTestUserID,
		Date:   "2025-06-04",
		Mode:   "remote",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/telework/overrides", h.RequestOverride)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestTeleworkHandler_RequestOverride_Forbidden(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{overrideErr: service.ErrTeleworkForbidden})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/telework/overrides", jsonBody(dto.RequestOverrideRequest{
		UserID: handlerTestUserID,
		Date:   "2025-06-04",
		Mode:   "remote",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/telework/overrides", withAuth("someone-else", "USER"), h.RequestOverride)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 14007 {
		t.Errorf("expected error code 14007, got %d", resp.Code)
	}
}

func TestTeleworkHandler_Validate(t *testing.T) {
	mock := &mockTeleworkService{
		validateResult: &dto.ValidationResult{
			IsValid:    true,
			CanProceed: true,
			Conflicts:  []dto.Conflict{},
		},
	}
	h := NewTeleworkHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/telework/overrides/validate", jsonBody(dto.ValidateOverrideRequest{
		UserID: handlerTestUserID,
		Date:   "2025-06-04",
		Mode:   "remote",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/telework/overrides/validate", h.Validate)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestTeleworkHandler_Validate_BadDate(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/telework/overrides/validate", jsonBody(dto.ValidateOverrideRequest{
		UserID: handlerTestUserID,
		Date:   "04/06/2025",
		Mode:   "remote",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/telework/overrides/validate", h.Validate)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 14001 {
		t.Errorf("expected error code 14001, got %d", resp.Code)
	}
}

func TestTeleworkHandler_ApproveOverride_NotFound(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{overrideErr: service.ErrOverrideNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/telework/overrides/missing/approve", nil)

	r := gin.New()
	r.PUT("/telework/overrides/:id/approve", withAuth(handlerTestUserID, "ADMIN"), h.ApproveOverride)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 14004 {
		t.Errorf("expected error code 14004, got %d", resp.Code)
	}
}

func TestTeleworkHandler_ApproveOverride_AlreadyProcessed(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{overrideErr: service.ErrOverrideAlreadyProcessed})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/telework/overrides/some-id/approve", nil)

	r := gin.New()
	r.PUT("/telework/overrides/:id/approve", withAuth(handlerTestUserID, "ADMIN"), h.ApproveOverride)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 14005 {
		t.Errorf("expected error code 14005, got %d", resp.Code)
	}
}

func TestTeleworkHandler_RejectOverride_PassesReason(t *testing.T) {
	mock := &mockTeleworkService{
		overrideResult: &dto.OverrideResponse{ID: "x", ApprovalStatus: "REJECTED"},
	}
	h := NewTeleworkHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/telework/overrides/x/reject", jsonBody(dto.RejectOverrideRequest{
		RejectionReason: "team day",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/telework/overrides/:id/reject", withAuth(handlerTestUserID, "RESPONSABLE"), h.RejectOverride)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.rejectGotReason != "team day" {
		t.Errorf("reason = %q, want %q", mock.rejectGotReason, "team day")
	}
}

func TestTeleworkHandler_CleanupExpired(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{cleanupDeleted: 3})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/telework/overrides/cleanup", nil)

	r := gin.New()
	r.POST("/telework/overrides/cleanup", withAuth(handlerTestUserID, "ADMIN"), h.CleanupExpired)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data dto.CleanupResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if resp.Data.Deleted != 3 {
		t.Errorf("deleted = %d, want 3", resp.Data.Deleted)
	}
}

func TestTeleworkHandler_ListUserOverrides_BadStart(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/telework/overrides/user/"+handlerTestUserID+"?start=bad", nil)

	r := gin.New()
	r.GET("/telework/overrides/user/:userId", h.ListUserOverrides)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTeleworkHandler_GetProfile_NotFoundUser(t *testing.T) {
	h := NewTeleworkHandler(&mockTeleworkService{profileErr: service.ErrTeleworkUserNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/telework/profiles/"+handlerTestUserID, nil)

	r := gin.New()
	r.GET("/telework/profiles/:userId", h.GetProfile)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(t, w)
	if resp.Code != 12001 {
		t.Errorf("expected error code 12001, got %d", resp.Code)
	}
}
