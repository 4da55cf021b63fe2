package repository

import "gorm.io/gorm"

// Repository aggregates all repository interfaces.
type Repository struct {
	User             UserRepository
	Team             TeamRepository
	TeleworkProfile  TeleworkProfileRepository
	TeleworkOverride TeleworkOverrideRepository
	TeamRule         TeamRuleRepository
}

// NewRepository builds the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:             NewUserRepo(db),
		Team:             NewTeamRepo(db),
		TeleworkProfile:  NewTeleworkProfileRepo(db),
		TeleworkOverride: NewTeleworkOverrideRepo(db),
		TeamRule:         NewTeamRuleRepo(db),
	}
}
