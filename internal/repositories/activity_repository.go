package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voyage/internal/models/db_models"
)

type ActivityRepository interface {
	// ReplaceForTrip wipes every activity row of the trip and inserts rows in one transaction.
	ReplaceForTrip(ctx context.Context, tripID uuid.UUID, rows []db_models.Activity) error
	Create(ctx context.Context, activity *db_models.Activity) error
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]db_models.Activity, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) ReplaceForTrip(ctx context.Context, tripID uuid.UUID, rows []db_models.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("trip_id = ?", tripID).
			Delete(&db_models.Activity{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].TripID = tripID
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

func (r *activityRepository) Create(ctx context.Context, activity *db_models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]db_models.Activity, error) {
	var activities []db_models.Activity
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day_number ASC NULLS LAST").
		Order("created_at ASC").
		Find(&activities).Error

	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Unscoped().
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.Activity{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
