package dto

// ── team rule requests ──

// RecurrencePayload mirrors the recurrence tagged union.
type RecurrencePayload struct {
	Type          string   `json:"type" binding:"required,oneof=weekly specific_dates"`
	DayOfWeek     *int     `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	SpecificDates []string `json:"specific_dates"` // YYYY-MM-DD
}

// CreateTeamRuleRequest creates a team telework rule.
type CreateTeamRuleRequest struct {
	Name            string            `json:"name" binding:"required,max=100"`
	Description     string            `json:"description" binding:"omitempty,max=500"`
	TeamID          *string           `json:"team_id" binding:"omitempty,uuid"`
	AffectedUserIDs []string          `json:"affected_user_ids" binding:"required,min=1"`
	Exemptions      []string          `json:"exemptions"`
	RequiredMode    string            `json:"required_mode" binding:"required,oneof=onsite remote hybrid"`
	Recurrence      RecurrencePayload `json:"recurrence" binding:"required"`
}

// UpdateTeamRuleRequest partially updates a rule. Nil fields are untouched.
type UpdateTeamRuleRequest struct {
	Name            *string            `json:"name" binding:"omitempty,max=100"`
	Description     *string            `json:"description" binding:"omitempty,max=500"`
	AffectedUserIDs *[]string          `json:"affected_user_ids"`
	Exemptions      *[]string          `json:"exemptions"`
	RequiredMode    *string            `json:"required_mode" binding:"omitempty,oneof=onsite remote hybrid"`
	Recurrence      *RecurrencePayload `json:"recurrence"`
	IsActive        *bool              `json:"is_active"`
}

// ── team rule responses ──

// TeamRuleResponse is the team rule view.
type TeamRuleResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	TeamID          string            `json:"team_id,omitempty"`
	AffectedUserIDs []string          `json:"affected_user_ids"`
	Exemptions      []string          `json:"exemptions"`
	RequiredMode    string            `json:"required_mode"`
	Recurrence      RecurrencePayload `json:"recurrence"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}
