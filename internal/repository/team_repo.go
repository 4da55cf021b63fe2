package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
)

// TeamRepository is the team data-access interface.
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	List(ctx context.Context) ([]model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id string) error
}

type teamRepo struct {
	db *gorm.DB
}

// NewTeamRepo builds the GORM-backed TeamRepository.
func NewTeamRepo(db *gorm.DB) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Where("team_id = ?", id).
		First(&team).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) List(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *teamRepo) Update(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *teamRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("team_id = ?", id).
		Delete(&model.Team{}).Error
}
