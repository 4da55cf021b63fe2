package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ElegAlex/Orchestr-a-docker-sub001/internal/model"
)

// OverrideQuery filters an override listing. Zero values mean "no filter".
type OverrideQuery struct {
	UserID string
	Status string
	Mode   string
	Start  *time.Time
	End    *time.Time
}

// TeleworkOverrideRepository is the override data-access interface.
type TeleworkOverrideRepository interface {
	// Upsert writes an override keyed by its deterministic id. Concurrent
	// requests for the same user/day resolve through the store's
	// upsert-by-primary-key atomicity (last write wins).
	Upsert(ctx context.Context, override *model.TeleworkOverride) error
	GetByID(ctx context.Context, id string) (*model.TeleworkOverride, error)
	Update(ctx context.Context, override *model.TeleworkOverride) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q OverrideQuery) ([]model.TeleworkOverride, error)
	ListByUserRange(ctx context.Context, userID string, start, end *time.Time) ([]model.TeleworkOverride, error)
	ListPending(ctx context.Context) ([]model.TeleworkOverride, error)
	// CountApprovedRemoteInRange counts approved remote days within
	// [start, end], excluding the row with excludeID.
	CountApprovedRemoteInRange(ctx context.Context, userID string, start, end time.Time, excludeID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type teleworkOverrideRepo struct {
	db *gorm.DB
}

// NewTeleworkOverrideRepo builds the GORM-backed TeleworkOverrideRepository.
func NewTeleworkOverrideRepo(db *gorm.DB) TeleworkOverrideRepository {
	return &teleworkOverrideRepo{db: db}
}

func (r *teleworkOverrideRepo) Upsert(ctx context.Context, override *model.TeleworkOverride) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "override_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"mode", "reason", "approval_status",
				"approved_by", "approved_at", "rejection_reason",
				"expires_at", "updated_at", "updated_by",
			}),
		}).
		Create(override).Error
}

func (r *teleworkOverrideRepo) GetByID(ctx context.Context, id string) (*model.TeleworkOverride, error) {
	var override model.TeleworkOverride
	err := r.db.WithContext(ctx).
		Where("override_id = ?", id).
		First(&override).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *teleworkOverrideRepo) Update(ctx context.Context, override *model.TeleworkOverride) error {
	return r.db.WithContext(ctx).Save(override).Error
}

func (r *teleworkOverrideRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("override_id = ?", id).
		Delete(&model.TeleworkOverride{}).Error
}

func (r *teleworkOverrideRepo) Query(ctx context.Context, q OverrideQuery) ([]model.TeleworkOverride, error) {
	db := r.db.WithContext(ctx).Model(&model.TeleworkOverride{})

	if q.UserID != "" {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.Status != "" {
		db = db.Where("approval_status = ?", q.Status)
	}
	if q.Mode != "" {
		db = db.Where("mode = ?", q.Mode)
	}
	if q.Start != nil {
		db = db.Where("date >= ?", *q.Start)
	}
	if q.End != nil {
		db = db.Where("date <= ?", *q.End)
	}

	var overrides []model.TeleworkOverride
	err := db.Order("date ASC").Find(&overrides).Error
	return overrides, err
}

func (r *teleworkOverrideRepo) ListByUserRange(ctx context.Context, userID string, start, end *time.Time) ([]model.TeleworkOverride, error) {
	return r.Query(ctx, OverrideQuery{UserID: userID, Start: start, End: end})
}

func (r *teleworkOverrideRepo) ListPending(ctx context.Context) ([]model.TeleworkOverride, error) {
	var overrides []model.TeleworkOverride
	err := r.db.WithContext(ctx).
		Where("approval_status = ?", model.StatusPending).
		Order("date ASC").
		Find(&overrides).Error
	return overrides, err
}

func (r *teleworkOverrideRepo) CountApprovedRemoteInRange(ctx context.Context, userID string, start, end time.Time, excludeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TeleworkOverride{}).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", start, end).
		Where("approval_status = ?", model.StatusApproved).
		Where("mode = ?", model.ModeRemote).
		Where("override_id <> ?", excludeID).
		Count(&count).Error
	return count, err
}

func (r *teleworkOverrideRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now).
		Delete(&model.TeleworkOverride{})
	return result.RowsAffected, result.Error
}
