package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"voyage/internal/models/db_models"
)

// ErrStaleTrip is returned by Save when the stored version no longer matches.
var ErrStaleTrip = errors.New("trip version mismatch")

type TripRepository interface {
	Create(ctx context.Context, trip *db_models.Trip) error
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Trip, int64, error)
	// Save writes every mutable column in one statement. A positive
	// expectedVersion makes the write conditional on the stored version.
	Save(ctx context.Context, trip *db_models.Trip, expectedVersion int) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *db_models.Trip) error {
	if trip.Version == 0 {
		trip.Version = 1
	}
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&trip).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (r *tripRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Trip, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&db_models.Trip{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trips []db_models.Trip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error

	if err != nil {
		return nil, 0, err
	}

	return trips, total, nil
}

func (r *tripRepository) Save(ctx context.Context, trip *db_models.Trip, expectedVersion int) error {
	query := r.db.WithContext(ctx).
		Model(trip).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "version"}, {Name: "updated_at"}}}).
		Where("user_id = ?", trip.UserID)
	if expectedVersion > 0 {
		query = query.Where("version = ?", expectedVersion)
	}

	res := query.Updates(map[string]interface{}{
		"location":     trip.Location,
		"title":        trip.Title,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"budget":       trip.Budget,
		"travelers":    trip.Travelers,
		"trip_details": trip.TripDetails,
		"plan":         trip.Plan,
		"version":      gorm.Expr("version + 1"),
		"updated_at":   time.Now().Unix(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleTrip
	}
	return nil
}

// Delete removes the trip and its projected activities atomically.
func (r *tripRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	deleted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&db_models.Trip{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true

		return tx.Unscoped().
			Where("trip_id = ?", id).
			Delete(&db_models.Activity{}).Error
	})

	return deleted, err
}
