package dto

// ── telework profile ──

// ConstraintsPayload mirrors the profile constraints object.
type ConstraintsPayload struct {
	MaxRemoteDaysPerWeek     *int  `json:"max_remote_days_per_week" binding:"omitempty,min=0,max=7"`
	MaxConsecutiveRemoteDays *int  `json:"max_consecutive_remote_days" binding:"omitempty,min=0,max=7"`
	RequiresApproval         *bool `json:"requires_approval"`
}

// CreateProfileRequest creates a user's telework profile.
type CreateProfileRequest struct {
	UserID        string              `json:"user_id" binding:"required,uuid"`
	DisplayName   string              `json:"display_name" binding:"omitempty,max=200"`
	DefaultMode   string              `json:"default_mode" binding:"omitempty,oneof=onsite remote hybrid"`
	WeeklyPattern map[string]string   `json:"weekly_pattern"`
	Constraints   *ConstraintsPayload `json:"constraints"`
}

// UpdateProfileRequest partially updates a profile. Nil fields are untouched.
type UpdateProfileRequest struct {
	DisplayName   *string             `json:"display_name" binding:"omitempty,max=200"`
	DefaultMode   *string             `json:"default_mode" binding:"omitempty,oneof=onsite remote hybrid"`
	WeeklyPattern *map[string]string  `json:"weekly_pattern"`
	Constraints   *ConstraintsPayload `json:"constraints"`
	IsActive      *bool               `json:"is_active"`
}

// ProfileResponse is the telework profile view.
type ProfileResponse struct {
	UserID        string            `json:"user_id"`
	DisplayName   string            `json:"display_name"`
	DefaultMode   string            `json:"default_mode"`
	WeeklyPattern map[string]string `json:"weekly_pattern"`
	Constraints   struct {
		MaxRemoteDaysPerWeek     int  `json:"max_remote_days_per_week"`
		MaxConsecutiveRemoteDays int  `json:"max_consecutive_remote_days"`
		RequiresApproval         bool `json:"requires_approval"`
	} `json:"constraints"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ── overrides ──

// RequestOverrideRequest declares a single-day telework exception.
type RequestOverrideRequest struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Mode      string `json:"mode" binding:"required,oneof=onsite remote hybrid"`
	Reason    string `json:"reason" binding:"omitempty,max=500"`
	ExpiresAt string `json:"expires_at" binding:"omitempty"` // RFC 3339
	// CreatedBy identifies the author on trusted internal calls where no
	// authenticated caller is attached.
	CreatedBy string `json:"created_by" binding:"omitempty,uuid"`
}

// RejectOverrideRequest carries the mandatory rejection reason.
type RejectOverrideRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// ValidateOverrideRequest is the dry-run validation payload.
type ValidateOverrideRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Mode   string `json:"mode" binding:"required,oneof=onsite remote hybrid"`
}

// OverrideQueryRequest filters an override listing.
type OverrideQueryRequest struct {
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Mode   string `form:"mode" binding:"omitempty,oneof=onsite remote hybrid"`
	Start  string `form:"start"` // YYYY-MM-DD
	End    string `form:"end"`   // YYYY-MM-DD
}

// OverrideResponse is the override view.
type OverrideResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Date            string `json:"date"`
	Mode            string `json:"mode"`
	Reason          string `json:"reason,omitempty"`
	ApprovalStatus  string `json:"approval_status"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	ApprovedAt      string `json:"approved_at,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	ExpiresAt       string `json:"expires_at,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// CleanupResponse reports the number of purged overrides.
type CleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

// ── validation result ──

// Conflict describes one validation finding.
type Conflict struct {
	Type                  string   `json:"type"`     // constraint_violation | team_rule_conflict
	Severity              string   `json:"severity"` // error | warning
	Message               string   `json:"message"`
	Source                string   `json:"source"`
	ResolutionSuggestions []string `json:"resolution_suggestions"`
}

// ValidationResult is the outcome of an override validation pass.
// Validity and proceed-ability are distinct: an invalid-but-proceedable
// request can still be submitted and will land in PENDING.
type ValidationResult struct {
	IsValid          bool       `json:"is_valid"`
	CanProceed       bool       `json:"can_proceed"`
	Reason           string     `json:"reason,omitempty"`
	Conflicts        []Conflict `json:"conflicts"`
	RequiresApproval bool       `json:"requires_approval"`
}
