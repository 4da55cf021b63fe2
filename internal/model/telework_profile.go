package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ── telework modes ──

const (
	ModeOnsite = "onsite"
	ModeRemote = "remote"
	ModeHybrid = "hybrid"

	// PatternDefault in a weekly pattern means "fall back to the default mode".
	PatternDefault = "default"
)

// ── policy defaults ──
//
// Applied when a profile's constraints leave a field unset. Operators may
// tune these per profile; the constants are only the fallback policy.

const (
	DefaultMaxRemoteDaysPerWeek     = 2
	DefaultMaxConsecutiveRemoteDays = 2
	DefaultRequiresApproval         = false
)

// WeeklyPattern maps a weekday name (monday … sunday) to a mode or "default".
// Stored as JSONB.
type WeeklyPattern map[string]string

// Scan implements the GORM Scanner interface.
func (p *WeeklyPattern) Scan(src interface{}) error {
	return scanJSONB(src, p, "WeeklyPattern")
}

// Value implements the GORM Valuer interface.
func (p WeeklyPattern) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	return json.Marshal(p)
}

// TeleworkConstraints bound a user's remote-work allowance. Stored as JSONB.
//
// MaxConsecutiveRemoteDays is persisted for data compatibility but is not
// read by validation.
type TeleworkConstraints struct {
	MaxRemoteDaysPerWeek     int  `json:"max_remote_days_per_week"`
	MaxConsecutiveRemoteDays int  `json:"max_consecutive_remote_days"`
	RequiresApproval         bool `json:"requires_approval"`
}

// Scan implements the GORM Scanner interface.
func (c *TeleworkConstraints) Scan(src interface{}) error {
	return scanJSONB(src, c, "TeleworkConstraints")
}

// Value implements the GORM Valuer interface.
func (c TeleworkConstraints) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// EffectiveMaxRemoteDaysPerWeek returns the weekly cap, falling back to the
// policy default when the field is unset.
func (c TeleworkConstraints) EffectiveMaxRemoteDaysPerWeek() int {
	if c.MaxRemoteDaysPerWeek <= 0 {
		return DefaultMaxRemoteDaysPerWeek
	}
	return c.MaxRemoteDaysPerWeek
}

// UserTeleworkProfile maps the user_telework_profiles table.
// At most one profile per user: user_id is the primary key.
type UserTeleworkProfile struct {
	UserID        string              `gorm:"type:uuid;primaryKey"            json:"user_id"`
	DisplayName   string              `gorm:"type:varchar(200);not null"      json:"display_name"`
	DefaultMode   string              `gorm:"type:varchar(20);not null"       json:"default_mode"`
	WeeklyPattern WeeklyPattern       `gorm:"type:jsonb;not null"             json:"weekly_pattern"`
	Constraints   TeleworkConstraints `gorm:"type:jsonb;not null"             json:"constraints"`
	IsActive      bool                `gorm:"not null;default:true"           json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (UserTeleworkProfile) TableName() string { return "user_telework_profiles" }

// ModeOn resolves the declared mode for a calendar day from the weekly
// pattern, falling back to the default mode. Overrides are applied by the
// caller, not here.
func (p *UserTeleworkProfile) ModeOn(date time.Time) string {
	key := strings.ToLower(date.Weekday().String())
	if mode, ok := p.WeeklyPattern[key]; ok && mode != "" && mode != PatternDefault {
		return mode
	}
	return p.DefaultMode
}

// scanJSONB is the shared Scanner body for JSONB-backed types.
func scanJSONB(src, dst interface{}, typeName string) error {
	if src == nil {
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("%s.Scan: unsupported type %T", typeName, src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
