package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
)

// TeleworkProfileRepository is the telework-profile data-access interface.
type TeleworkProfileRepository interface {
	Create(ctx context.Context, profile *model.UserTeleworkProfile) error
	GetByUserID(ctx context.Context, userID string) (*model.UserTeleworkProfile, error)
	Update(ctx context.Context, profile *model.UserTeleworkProfile) error
}

type teleworkProfileRepo struct {
	db *gorm.DB
}

// NewTeleworkProfileRepo builds the GORM-backed TeleworkProfileRepository.
func NewTeleworkProfileRepo(db *gorm.DB) TeleworkProfileRepository {
	return &teleworkProfileRepo{db: db}
}

func (r *teleworkProfileRepo) Create(ctx context.Context, profile *model.UserTeleworkProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *teleworkProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.UserTeleworkProfile, error) {
	var profile model.UserTeleworkProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *teleworkProfileRepo) Update(ctx context.Context, profile *model.UserTeleworkProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
