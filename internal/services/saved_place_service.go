package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"voyage/internal/models/db_models"
	"voyage/internal/models/request_models"
	"voyage/internal/models/response_models"
	"voyage/internal/repositories"
	"voyage/pkg/utils"
)

type SavedPlaceServiceInterface interface {
	Save(ctx context.Context, userID uuid.UUID, request request_models.SavePlaceRequest) (*response_models.SavedPlaceResponse, error)
	// EnsureSaved records the place unless the user already saved it.
	EnsureSaved(ctx context.Context, userID uuid.UUID, placeName string, details map[string]any) error
	List(ctx context.Context, userID uuid.UUID) ([]response_models.SavedPlaceResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type SavedPlaceService struct {
	repo repositories.SavedPlaceRepository
}

func NewSavedPlaceService(repo repositories.SavedPlaceRepository) SavedPlaceServiceInterface {
	return &SavedPlaceService{repo: repo}
}

func (s *SavedPlaceService) Save(ctx context.Context, userID uuid.UUID, request request_models.SavePlaceRequest) (*response_models.SavedPlaceResponse, error) {
	name := strings.TrimSpace(request.PlaceName)
	if name == "" {
		return nil, fmt.Errorf("%w: place name is required", utils.ErrInvalidInput)
	}

	existing, err := s.repo.FindByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrPlaceAlreadySaved
	}

	place, err := s.insert(ctx, userID, name, request.PlaceDetails)
	if err != nil {
		return nil, err
	}

	resp := toSavedPlaceResponse(place)
	return &resp, nil
}

func (s *SavedPlaceService) EnsureSaved(ctx context.Context, userID uuid.UUID, placeName string, details map[string]any) error {
	name := strings.TrimSpace(placeName)
	if name == "" {
		return nil
	}

	existing, err := s.repo.FindByName(ctx, userID, name)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil
	}

	_, err = s.insert(ctx, userID, name, details)
	if errors.Is(err, utils.ErrPlaceAlreadySaved) {
		// lost a race with a concurrent save of the same name
		return nil
	}
	return err
}

func (s *SavedPlaceService) insert(ctx context.Context, userID uuid.UUID, name string, details map[string]any) (*db_models.SavedPlace, error) {
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("%w: place details must be a JSON object", utils.ErrInvalidInput)
	}

	place := &db_models.SavedPlace{
		UserID:       userID,
		PlaceName:    name,
		PlaceDetails: datatypes.JSON(raw),
	}
	if err := s.repo.Create(ctx, place); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrPlaceAlreadySaved
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return place, nil
}

func (s *SavedPlaceService) List(ctx context.Context, userID uuid.UUID) ([]response_models.SavedPlaceResponse, error) {
	places, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.SavedPlaceResponse, 0, len(places))
	for i := range places {
		out = append(out, toSavedPlaceResponse(&places[i]))
	}
	return out, nil
}

func (s *SavedPlaceService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrSavedPlaceNotFound
	}
	return nil
}
