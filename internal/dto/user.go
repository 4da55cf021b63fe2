package dto

// ── user requests ──

// CreateUserRequest creates a directory entry.
type CreateUserRequest struct {
	Email     string  `json:"email"      binding:"required,email"`
	Password  string  `json:"password"   binding:"required,min=8"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name"  binding:"required"`
	Role      string  `json:"role"       binding:"omitempty,oneof=ADMIN RESPONSABLE USER"`
	TeamID    *string `json:"team_id"`
}

// UpdateUserRequest partially updates a user. Nil fields are untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role" binding:"omitempty,oneof=ADMIN RESPONSABLE USER"`
	TeamID    *string `json:"team_id"`
	IsActive  *bool   `json:"is_active"`
}

// ── user responses ──

// UserResponse is the sanitized user view.
type UserResponse struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Role      string        `json:"role"`
	Team      *TeamResponse `json:"team,omitempty"`
	IsActive  bool          `json:"is_active"`
}
