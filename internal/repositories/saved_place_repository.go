package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voyage/internal/models/db_models"
)

type SavedPlaceRepository interface {
	// Create returns gorm.ErrDuplicatedKey when the user already saved the name.
	Create(ctx context.Context, place *db_models.SavedPlace) error
	FindByName(ctx context.Context, userID uuid.UUID, placeName string) (*db_models.SavedPlace, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.SavedPlace, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type savedPlaceRepository struct {
	db *gorm.DB
}

func NewSavedPlaceRepository(db *gorm.DB) SavedPlaceRepository {
	return &savedPlaceRepository{db: db}
}

func (r *savedPlaceRepository) Create(ctx context.Context, place *db_models.SavedPlace) error {
	return r.db.WithContext(ctx).Create(place).Error
}

func (r *savedPlaceRepository) FindByName(ctx context.Context, userID uuid.UUID, placeName string) (*db_models.SavedPlace, error) {
	var place db_models.SavedPlace
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND place_name = ?", userID, placeName).
		First(&place).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *savedPlaceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.SavedPlace, error) {
	var places []db_models.SavedPlace
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *savedPlaceRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.SavedPlace{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
