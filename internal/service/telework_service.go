package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/dto"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/repository"
)

// ── telework module business errors ──

var (
	ErrTeleworkUserNotFound     = errors.New("user not found")
	ErrProfileNotFound          = errors.New("telework profile not found")
	ErrProfileAlreadyExists     = errors.New("telework profile already exists")
	ErrOverrideNotFound         = errors.New("telework override not found")
	ErrOverrideAlreadyProcessed = errors.New("override already processed")
	ErrRejectionReasonRequired  = errors.New("rejection reason is required")
	ErrTeleworkForbidden        = errors.New("not allowed to act on this user's telework data")
	ErrInvalidDate              = errors.New("invalid date, expected YYYY-MM-DD")
)

// ── conflict taxonomy ──

const (
	ConflictConstraintViolation = "constraint_violation"
	ConflictTeamRule            = "team_rule_conflict"

	SeverityError   = "error"
	SeverityWarning = "warning"

	SourceWeeklyLimit = "weekly_limit"
)

const dateLayout = "2006-01-02"
const timestampLayout = "2006-01-02T15:04:05Z"

// TeleworkService owns the override validation engine and the override
// lifecycle, plus profile management.
type TeleworkService interface {
	// profiles
	CreateProfile(ctx context.Context, req *dto.CreateProfileRequest, callerID string) (*dto.ProfileResponse, error)
	GetOrCreateProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest, callerID string) (*dto.ProfileResponse, error)

	// validation (dry-run, no persistence, never returns an error)
	ValidateOverrideRequest(ctx context.Context, userID string, date time.Time, requestedMode string) *dto.ValidationResult

	// override lifecycle
	RequestOverride(ctx context.Context, req *dto.RequestOverrideRequest, callerID, callerRole string) (*dto.OverrideResponse, error)
	ApproveOverride(ctx context.Context, id, approverID string) (*dto.OverrideResponse, error)
	RejectOverride(ctx context.Context, id, approverID, rejectionReason string) (*dto.OverrideResponse, error)
	DeleteOverride(ctx context.Context, id, callerID, callerRole string) error
	CleanupExpiredOverrides(ctx context.Context) (int64, error)

	// reads
	GetOverrides(ctx context.Context, q *dto.OverrideQueryRequest) ([]dto.OverrideResponse, error)
	GetUserOverrides(ctx context.Context, userID string, start, end *time.Time) ([]dto.OverrideResponse, error)
	GetPendingOverrides(ctx context.Context, approverID string) ([]dto.OverrideResponse, error)
}

type teleworkService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeleworkService builds the TeleworkService.
func NewTeleworkService(repo *repository.Repository, logger *zap.Logger) TeleworkService {
	return &teleworkService{repo: repo, logger: logger}
}

// ────────────────────── profiles ──────────────────────

func (s *teleworkService) CreateProfile(ctx context.Context, req *dto.CreateProfileRequest, callerID string) (*dto.ProfileResponse, error) {
	// The user directory is the source of truth for userID validity.
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeleworkUserNotFound
		}
		s.logger.Error("looking up user for profile creation", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.TeleworkProfile.GetByUserID(ctx, req.UserID); err == nil {
		return nil, ErrProfileAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("checking existing profile", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	profile := defaultProfile(user)
	if req.DisplayName != "" {
		profile.DisplayName = req.DisplayName
	}
	if req.DefaultMode != "" {
		profile.DefaultMode = req.DefaultMode
	}
	if req.WeeklyPattern != nil {
		profile.WeeklyPattern = model.WeeklyPattern(req.WeeklyPattern)
	}
	applyConstraints(&profile.Constraints, req.Constraints)
	if callerID != "" {
		profile.CreatedBy = &callerID
	}

	if err := s.repo.TeleworkProfile.Create(ctx, profile); err != nil {
		s.logger.Error("creating telework profile", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	return toProfileResponse(profile), nil
}

// GetOrCreateProfile returns the user's profile, lazily creating the default
// one on first access.
func (s *teleworkService) GetOrCreateProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.repo.TeleworkProfile.GetByUserID(ctx, userID)
	if err == nil {
		return toProfileResponse(profile), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("loading telework profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeleworkUserNotFound
		}
		return nil, err
	}

	profile = defaultProfile(user)
	if err := s.repo.TeleworkProfile.Create(ctx, profile); err != nil {
		s.logger.Error("lazily creating telework profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toProfileResponse(profile), nil
}

func (s *teleworkService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest, callerID string) (*dto.ProfileResponse, error) {
	profile, err := s.repo.TeleworkProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("loading telework profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.DefaultMode != nil {
		profile.DefaultMode = *req.DefaultMode
	}
	if req.WeeklyPattern != nil {
		profile.WeeklyPattern = model.WeeklyPattern(*req.WeeklyPattern)
	}
	applyConstraints(&profile.Constraints, req.Constraints)
	if req.IsActive != nil {
		profile.IsActive = *req.IsActive
	}
	if callerID != "" {
		profile.UpdatedBy = &callerID
	}

	if err := s.repo.TeleworkProfile.Update(ctx, profile); err != nil {
		s.logger.Error("updating telework profile", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return toProfileResponse(profile), nil
}

// ────────────────────── validation engine ──────────────────────

// ValidateOverrideRequest decides whether declaring requestedMode on date is
// valid for the user, which conflicts it raises, and whether it requires
// approval. Pure read + compute, no persistence.
//
// Failures never propagate: a missing profile or a storage error during the
// pass degrades to a negative result so UI callers can render "cannot
// submit" without exception handling.
func (s *teleworkService) ValidateOverrideRequest(ctx context.Context, userID string, date time.Time, requestedMode string) *dto.ValidationResult {
	result := &dto.ValidationResult{Conflicts: []dto.Conflict{}}

	profile, err := s.repo.TeleworkProfile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result.Reason = "profile not found"
			return result
		}
		s.logger.Error("validation: loading profile", zap.String("user_id", userID), zap.Error(err))
		result.Reason = "validation error"
		return result
	}

	// Weekly remote quota, ISO week (Monday through Sunday). The day under
	// evaluation is excluded from the count so re-validating an existing day
	// does not block itself. Only approved overrides count.
	if requestedMode == model.ModeRemote {
		weekStart, weekEnd := isoWeekBounds(date)
		count, err := s.repo.TeleworkOverride.CountApprovedRemoteInRange(
			ctx, userID, weekStart, weekEnd, model.OverrideID(userID, date))
		if err != nil {
			s.logger.Error("validation: counting remote days", zap.String("user_id", userID), zap.Error(err))
			result.Reason = "validation error"
			return result
		}

		max := profile.Constraints.EffectiveMaxRemoteDaysPerWeek()
		if count >= int64(max) {
			result.Conflicts = append(result.Conflicts, dto.Conflict{
				Type:     ConflictConstraintViolation,
				Severity: SeverityError,
				Message:  fmt.Sprintf("weekly remote limit reached: %d of %d approved remote days already used", count, max),
				Source:   SourceWeeklyLimit,
				ResolutionSuggestions: []string{
					"pick a day in another week",
					"ask a manager to raise the weekly remote limit",
				},
			})
		}
	}

	// Team rules. Conflicts are warnings only: they force approval but never
	// block submission.
	rules, err := s.repo.TeamRule.ListActiveForUser(ctx, userID)
	if err != nil {
		s.logger.Error("validation: loading team rules", zap.String("user_id", userID), zap.Error(err))
		result.Reason = "validation error"
		return result
	}
	for i := range rules {
		rule := &rules[i]
		if !rule.AppliesTo(userID, date) {
			continue
		}
		if rule.RequiredMode == requestedMode {
			continue
		}
		result.Conflicts = append(result.Conflicts, dto.Conflict{
			Type:     ConflictTeamRule,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("team rule %q requires mode %q on this day", rule.Name, rule.RequiredMode),
			Source:   rule.RuleID,
			ResolutionSuggestions: []string{
				fmt.Sprintf("declare %q instead", rule.RequiredMode),
				"request an exemption from the rule",
			},
		})
	}

	result.RequiresApproval = profile.Constraints.RequiresApproval
	for _, c := range result.Conflicts {
		if c.Type == ConflictTeamRule || c.Severity == SeverityError {
			result.RequiresApproval = true
		}
	}

	result.IsValid = !hasErrorConflict(result.Conflicts)
	result.CanProceed = true // the profile was found
	return result
}

// ────────────────────── override lifecycle ──────────────────────

func (s *teleworkService) RequestOverride(ctx context.Context, req *dto.RequestOverrideRequest, callerID, callerRole string) (*dto.OverrideResponse, error) {
	// An empty caller identity is a trusted internal call and skips the
	// permission check.
	if callerID != "" && callerID != req.UserID && !model.IsPrivileged(callerRole) {
		return nil, ErrTeleworkForbidden
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	validation := s.ValidateOverrideRequest(ctx, req.UserID, date, req.Mode)
	if !validation.CanProceed {
		if validation.Reason == "profile not found" {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("override validation failed: %s", validation.Reason)
	}

	status := model.StatusApproved
	if validation.RequiresApproval {
		status = model.StatusPending
	}

	author := callerID
	if author == "" {
		author = req.CreatedBy
	}

	now := time.Now()
	override := &model.TeleworkOverride{
		OverrideID:     model.OverrideID(req.UserID, date),
		UserID:         req.UserID,
		Date:           date,
		Mode:           req.Mode,
		Reason:         req.Reason,
		ApprovalStatus: status,
	}
	// On auto-approval the requester stamps the approval; when approval is
	// required the fields stay empty. The upsert resets them either way, so
	// a prior decision never carries over to changed content.
	if status == model.StatusApproved {
		if author != "" {
			override.ApprovedBy = &author
		}
		override.ApprovedAt = &now
	}
	if req.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("invalid expires_at, expected RFC 3339: %w", err)
		}
		override.ExpiresAt = &expires
	}
	if author != "" {
		override.CreatedBy = &author
		override.UpdatedBy = &author
	}

	if err := s.repo.TeleworkOverride.Upsert(ctx, override); err != nil {
		s.logger.Error("upserting telework override",
			zap.String("override_id", override.OverrideID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("telework override requested",
		zap.String("override_id", override.OverrideID),
		zap.String("mode", override.Mode),
		zap.String("status", override.ApprovalStatus),
	)

	return toOverrideResponse(override), nil
}

func (s *teleworkService) ApproveOverride(ctx context.Context, id, approverID string) (*dto.OverrideResponse, error) {
	override, err := s.getOverride(ctx, id)
	if err != nil {
		return nil, err
	}
	if override.ApprovalStatus != model.StatusPending {
		return nil, fmt.Errorf("%w: current status is %s", ErrOverrideAlreadyProcessed, override.ApprovalStatus)
	}

	now := time.Now()
	override.ApprovalStatus = model.StatusApproved
	override.ApprovedBy = &approverID
	override.ApprovedAt = &now
	override.RejectionReason = nil
	override.UpdatedBy = &approverID

	if err := s.repo.TeleworkOverride.Update(ctx, override); err != nil {
		s.logger.Error("approving telework override", zap.String("override_id", id), zap.Error(err))
		return nil, err
	}

	return toOverrideResponse(override), nil
}

func (s *teleworkService) RejectOverride(ctx context.Context, id, approverID, rejectionReason string) (*dto.OverrideResponse, error) {
	override, err := s.getOverride(ctx, id)
	if err != nil {
		return nil, err
	}
	if override.ApprovalStatus != model.StatusPending {
		return nil, fmt.Errorf("%w: current status is %s", ErrOverrideAlreadyProcessed, override.ApprovalStatus)
	}
	if strings.TrimSpace(rejectionReason) == "" {
		return nil, ErrRejectionReasonRequired
	}

	now := time.Now()
	override.ApprovalStatus = model.StatusRejected
	override.ApprovedBy = &approverID
	override.ApprovedAt = &now
	override.RejectionReason = &rejectionReason
	override.UpdatedBy = &approverID

	if err := s.repo.TeleworkOverride.Update(ctx, override); err != nil {
		s.logger.Error("rejecting telework override", zap.String("override_id", id), zap.Error(err))
		return nil, err
	}

	return toOverrideResponse(override), nil
}

func (s *teleworkService) DeleteOverride(ctx context.Context, id, callerID, callerRole string) error {
	override, err := s.getOverride(ctx, id)
	if err != nil {
		return err
	}

	if callerID != "" && callerID != override.UserID && !model.IsPrivileged(callerRole) {
		return ErrTeleworkForbidden
	}

	if err := s.repo.TeleworkOverride.Delete(ctx, id); err != nil {
		s.logger.Error("deleting telework override", zap.String("override_id", id), zap.Error(err))
		return err
	}
	return nil
}

// CleanupExpiredOverrides bulk-deletes overrides whose expiry has passed and
// returns the number removed. Intended for a scheduled or administrative
// caller; no per-row authorization.
func (s *teleworkService) CleanupExpiredOverrides(ctx context.Context) (int64, error) {
	deleted, err := s.repo.TeleworkOverride.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("cleaning up expired overrides", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("expired telework overrides purged", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

// ────────────────────── reads ──────────────────────

func (s *teleworkService) GetOverrides(ctx context.Context, q *dto.OverrideQueryRequest) ([]dto.OverrideResponse, error) {
	query := repository.OverrideQuery{
		UserID: q.UserID,
		Status: q.Status,
		Mode:   q.Mode,
	}
	if q.Start != "" {
		start, err := time.Parse(dateLayout, q.Start)
		if err != nil {
			return nil, ErrInvalidDate
		}
		query.Start = &start
	}
	if q.End != "" {
		end, err := time.Parse(dateLayout, q.End)
		if err != nil {
			return nil, ErrInvalidDate
		}
		query.End = &end
	}

	overrides, err := s.repo.TeleworkOverride.Query(ctx, query)
	if err != nil {
		s.logger.Error("listing telework overrides", zap.Error(err))
		return nil, err
	}
	return toOverrideResponses(overrides), nil
}

func (s *teleworkService) GetUserOverrides(ctx context.Context, userID string, start, end *time.Time) ([]dto.OverrideResponse, error) {
	overrides, err := s.repo.TeleworkOverride.ListByUserRange(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("listing user overrides", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toOverrideResponses(overrides), nil
}

// GetPendingOverrides lists overrides awaiting a decision. The approverID
// parameter is accepted for API compatibility but not applied as a filter:
// there is no reporting-line model to scope approvers by.
func (s *teleworkService) GetPendingOverrides(ctx context.Context, approverID string) ([]dto.OverrideResponse, error) {
	_ = approverID
	overrides, err := s.repo.TeleworkOverride.ListPending(ctx)
	if err != nil {
		s.logger.Error("listing pending overrides", zap.Error(err))
		return nil, err
	}
	return toOverrideResponses(overrides), nil
}

// ────────────────────── helpers ──────────────────────

func (s *teleworkService) getOverride(ctx context.Context, id string) (*model.TeleworkOverride, error) {
	override, err := s.repo.TeleworkOverride.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOverrideNotFound
		}
		s.logger.Error("loading telework override", zap.String("override_id", id), zap.Error(err))
		return nil, err
	}
	return override, nil
}

// isoWeekBounds returns the Monday and Sunday of the ISO week containing d,
// at midnight in d's location.
func isoWeekBounds(d time.Time) (time.Time, time.Time) {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 … Sunday=6
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

func hasErrorConflict(conflicts []dto.Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

func defaultProfile(user *model.User) *model.UserTeleworkProfile {
	return &model.UserTeleworkProfile{
		UserID:        user.UserID,
		DisplayName:   user.FirstName + " " + user.LastName,
		DefaultMode:   model.ModeOnsite,
		WeeklyPattern: model.WeeklyPattern{},
		Constraints: model.TeleworkConstraints{
			MaxRemoteDaysPerWeek:     model.DefaultMaxRemoteDaysPerWeek,
			MaxConsecutiveRemoteDays: model.DefaultMaxConsecutiveRemoteDays,
			RequiresApproval:         model.DefaultRequiresApproval,
		},
		IsActive: true,
	}
}

func applyConstraints(c *model.TeleworkConstraints, payload *dto.ConstraintsPayload) {
	if payload == nil {
		return
	}
	if payload.MaxRemoteDaysPerWeek != nil {
		c.MaxRemoteDaysPerWeek = *payload.MaxRemoteDaysPerWeek
	}
	if payload.MaxConsecutiveRemoteDays != nil {
		c.MaxConsecutiveRemoteDays = *payload.MaxConsecutiveRemoteDays
	}
	if payload.RequiresApproval != nil {
		c.RequiresApproval = *payload.RequiresApproval
	}
}

func toProfileResponse(p *model.UserTeleworkProfile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		UserID:        p.UserID,
		DisplayName:   p.DisplayName,
		DefaultMode:   p.DefaultMode,
		WeeklyPattern: map[string]string(p.WeeklyPattern),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format(timestampLayout),
		UpdatedAt:     p.UpdatedAt.Format(timestampLayout),
	}
	resp.Constraints.MaxRemoteDaysPerWeek = p.Constraints.MaxRemoteDaysPerWeek
	resp.Constraints.MaxConsecutiveRemoteDays = p.Constraints.MaxConsecutiveRemoteDays
	resp.Constraints.RequiresApproval = p.Constraints.RequiresApproval
	return resp
}

func toOverrideResponse(o *model.TeleworkOverride) *dto.OverrideResponse {
	resp := &dto.OverrideResponse{
		ID:             o.OverrideID,
		UserID:         o.UserID,
		Date:           o.Date.Format(dateLayout),
		Mode:           o.Mode,
		Reason:         o.Reason,
		ApprovalStatus: o.ApprovalStatus,
		CreatedAt:      o.CreatedAt.Format(timestampLayout),
		UpdatedAt:      o.UpdatedAt.Format(timestampLayout),
	}
	if o.ApprovedBy != nil {
		resp.ApprovedBy = *o.ApprovedBy
	}
	if o.ApprovedAt != nil {
		resp.ApprovedAt = o.ApprovedAt.Format(timestampLayout)
	}
	if o.RejectionReason != nil {
		resp.RejectionReason = *o.RejectionReason
	}
	if o.ExpiresAt != nil {
		resp.ExpiresAt = o.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

func toOverrideResponses(overrides []model.TeleworkOverride) []dto.OverrideResponse {
	result := make([]dto.OverrideResponse, 0, len(overrides))
	for i := range overrides {
		result = append(result, *toOverrideResponse(&overrides[i]))
	}
	return result
}
