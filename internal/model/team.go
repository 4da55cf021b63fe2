package model

// Team maps the teams table.
type Team struct {
	TeamID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"team_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Team) TableName() string { return "teams" }
