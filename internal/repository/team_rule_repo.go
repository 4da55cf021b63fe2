package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
)

// TeamRuleRepository is the team-telework-rule data-access interface.
type TeamRuleRepository interface {
	Create(ctx context.Context, rule *model.TeamTeleworkRule) error
	GetByID(ctx context.Context, id string) (*model.TeamTeleworkRule, error)
	// List returns every rule, or only one team's rules when teamID is set.
	List(ctx context.Context, teamID string) ([]model.TeamTeleworkRule, error)
	// ListActiveForUser returns the active rules whose affected-user list
	// contains the given user.
	ListActiveForUser(ctx context.Context, userID string) ([]model.TeamTeleworkRule, error)
	Update(ctx context.Context, rule *model.TeamTeleworkRule) error
	Delete(ctx context.Context, id string) error
}

type teamRuleRepo struct {
	db *gorm.DB
}

// NewTeamRuleRepo builds the GORM-backed TeamRuleRepository.
func NewTeamRuleRepo(db *gorm.DB) TeamRuleRepository {
	return &teamRuleRepo{db: db}
}

func (r *teamRuleRepo) Create(ctx context.Context, rule *model.TeamTeleworkRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *teamRuleRepo) GetByID(ctx context.Context, id string) (*model.TeamTeleworkRule, error) {
	var rule model.TeamTeleworkRule
	err := r.db.WithContext(ctx).
		Where("rule_id = ?", id).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *teamRuleRepo) List(ctx context.Context, teamID string) ([]model.TeamTeleworkRule, error) {
	var rules []model.TeamTeleworkRule
	query := r.db.WithContext(ctx).Order("name ASC")
	if teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}
	err := query.Find(&rules).Error
	return rules, err
}

func (r *teamRuleRepo) ListActiveForUser(ctx context.Context, userID string) ([]model.TeamTeleworkRule, error) {
	var rules []model.TeamTeleworkRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("? = ANY(affected_user_ids)", userID).
		Find(&rules).Error
	return rules, err
}

func (r *teamRuleRepo) Update(ctx context.Context, rule *model.TeamTeleworkRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *teamRuleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("rule_id = ?", id).
		Delete(&model.TeamTeleworkRule{}).Error
}
