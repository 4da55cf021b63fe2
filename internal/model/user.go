package model

// ── roles ──

const (
	RoleAdmin       = "ADMIN"
	RoleResponsable = "RESPONSABLE"
	RoleUser        = "USER"
)

// User maps the users table. Acts as the user directory consulted when a
// telework profile is created.
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	FirstName    string  `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName     string  `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Role         string  `gorm:"type:varchar(20);not null;default:'USER'"       json:"role"`
	TeamID       *string `gorm:"type:uuid"                                      json:"team_id,omitempty"`
	IsActive     bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Team *Team `gorm:"foreignKey:TeamID;references:TeamID" json:"team,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// IsPrivileged reports whether the role may act on other users' telework data.
func IsPrivileged(role string) bool {
	return role == RoleAdmin || role == RoleResponsable
}
