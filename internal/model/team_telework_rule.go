package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ── recurrence kinds ──

const (
	RecurrenceWeekly        = "weekly"
	RecurrenceSpecificDates = "specific_dates"
)

// WeeklyRecurrence is the payload of a weekly recurrence.
// DayOfWeek follows time.Weekday: 0=Sunday … 6=Saturday.
type WeeklyRecurrence struct {
	DayOfWeek int `json:"day_of_week"`
}

// Recurrence is the tagged union describing when a team rule applies:
// either a fixed weekday or an explicit list of calendar days.
// Stored as JSONB.
type Recurrence struct {
	Type          string            `json:"type"`
	WeeklyPattern *WeeklyRecurrence `json:"weekly_pattern,omitempty"`
	SpecificDates []string          `json:"specific_dates,omitempty"` // YYYY-MM-DD
}

// Scan implements the GORM Scanner interface.
func (r *Recurrence) Scan(src interface{}) error {
	return scanJSONB(src, r, "Recurrence")
}

// Value implements the GORM Valuer interface.
func (r Recurrence) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// ActiveOn reports whether the recurrence covers the given calendar day.
// This is the only place the union is interpreted; unknown kinds are
// treated as inactive.
func (r Recurrence) ActiveOn(date time.Time) bool {
	switch r.Type {
	case RecurrenceWeekly:
		return r.WeeklyPattern != nil && int(date.Weekday()) == r.WeeklyPattern.DayOfWeek
	case RecurrenceSpecificDates:
		day := date.Format("2006-01-02")
		for _, d := range r.SpecificDates {
			if d == day {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// TeamTeleworkRule maps the team_telework_rules table: a recurring mode
// constraint applied to an explicit set of users, with per-user exemptions.
type TeamTeleworkRule struct {
	RuleID          string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rule_id"`
	Name            string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Description     string      `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	TeamID          *string     `gorm:"type:uuid"                                      json:"team_id,omitempty"`
	AffectedUserIDs StringArray `gorm:"type:text[];not null"                           json:"affected_user_ids"`
	Exemptions      StringArray `gorm:"type:text[];not null"                           json:"exemptions"`
	RequiredMode    string      `gorm:"type:varchar(20);not null"                      json:"required_mode"`
	Recurrence      Recurrence  `gorm:"type:jsonb;not null"                            json:"recurrence"`
	IsActive        bool        `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (TeamTeleworkRule) TableName() string { return "team_telework_rules" }

// AppliesTo reports whether the rule binds the given user on the given day:
// the user is affected, not exempt, and the recurrence is active.
func (t *TeamTeleworkRule) AppliesTo(userID string, date time.Time) bool {
	if !t.AffectedUserIDs.Contains(userID) {
		return false
	}
	if t.Exemptions.Contains(userID) {
		return false
	}
	return t.Recurrence.ActiveOn(date)
}
