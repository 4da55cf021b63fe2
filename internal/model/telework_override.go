package model

import "time"

// ── approval statuses ──

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// OverrideID derives the deterministic primary key for a user/day pair.
// The same (user, date) always yields the same id, so a second request for
// the same day upserts the first row instead of adding a duplicate.
func OverrideID(userID string, date time.Time) string {
	return userID + "_" + date.Format("2006-01-02")
}

// TeleworkOverride maps the telework_overrides table: a single day's declared
// exception to the user's default telework pattern.
type TeleworkOverride struct {
	OverrideID      string     `gorm:"type:varchar(100);primaryKey"       json:"override_id"`
	UserID          string     `gorm:"type:uuid;not null;index"           json:"user_id"`
	Date            time.Time  `gorm:"type:date;not null"                 json:"date"`
	Mode            string     `gorm:"type:varchar(20);not null"          json:"mode"`
	Reason          string     `gorm:"type:varchar(500)"                  json:"reason,omitempty"`
	ApprovalStatus  string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"approval_status"`
	ApprovedBy      *string    `gorm:"type:uuid"                          json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `gorm:"type:varchar(500)"                  json:"rejection_reason,omitempty"`
	ExpiresAt       *time.Time `gorm:"index"                              json:"expires_at,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (TeleworkOverride) TableName() string { return "telework_overrides" }
