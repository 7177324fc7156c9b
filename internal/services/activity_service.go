package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"voyage/internal/models/db_models"
	"voyage/internal/models/request_models"
	"voyage/internal/models/response_models"
	"voyage/internal/repositories"
	"voyage/pkg/utils"
)

type ActivityServiceInterface interface {
	// SyncFromTrip rebuilds the trip's activity rows from its itinerary. A trip
	// without an itinerary is left alone; a malformed one returns ErrMalformedItinerary.
	SyncFromTrip(ctx context.Context, trip *db_models.Trip) error
	Create(ctx context.Context, userID uuid.UUID, request request_models.CreateActivityRequest) (*response_models.ActivityResponse, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]response_models.ActivityResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ActivityService struct {
	activityRepo repositories.ActivityRepository
	tripRepo     repositories.TripRepository
}

func NewActivityService(activityRepo repositories.ActivityRepository, tripRepo repositories.TripRepository) ActivityServiceInterface {
	return &ActivityService{
		activityRepo: activityRepo,
		tripRepo:     tripRepo,
	}
}

func (s *ActivityService) SyncFromTrip(ctx context.Context, trip *db_models.Trip) error {
	itinerary, found, err := db_models.ExtractItinerary(trip.TripDetails)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrMalformedItinerary, err)
	}
	if !found {
		return nil
	}

	rows := ProjectItinerary(trip.UserID, itinerary)
	if err := s.activityRepo.ReplaceForTrip(ctx, trip.ID, rows); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	slog.DebugContext(ctx, "activity projection rebuilt", "trip_id", trip.ID, "rows", len(rows))
	return nil
}

// ProjectItinerary flattens an itinerary into activity rows in day order.
func ProjectItinerary(userID uuid.UUID, itinerary db_models.Itinerary) []db_models.Activity {
	var rows []db_models.Activity
	for _, day := range itinerary {
		dayNumber := day.DayNumber
		for _, act := range day.Activities {
			row := db_models.Activity{
				UserID:         userID,
				DayNumber:      &dayNumber,
				Name:           act.DisplayName(),
				Details:        act.Notes,
				Price:          act.Cost,
				Time:           act.Time,
				GeoCoordinates: act.GeoCoordinates(),
			}
			if act.ImageURL != "" {
				imageURL := act.ImageURL
				row.ImageURL = &imageURL
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// syncBestEffort runs the projection and only logs failures.
func syncBestEffort(ctx context.Context, activities ActivityServiceInterface, trip *db_models.Trip) {
	if err := activities.SyncFromTrip(ctx, trip); err != nil {
		slog.WarnContext(ctx, "activity projection skipped", "trip_id", trip.ID, "error", err)
	}
}

func (s *ActivityService) Create(ctx context.Context, userID uuid.UUID, request request_models.CreateActivityRequest) (*response_models.ActivityResponse, error) {
	tripID, err := uuid.Parse(request.TripID)
	if err != nil {
		return nil, fmt.Errorf("%w: trip_id must be a UUID", utils.ErrInvalidInput)
	}
	if request.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", utils.ErrInvalidInput)
	}
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		name = "Unnamed Activity"
	}

	activity := &db_models.Activity{
		TripID:         tripID,
		UserID:         userID,
		Name:           name,
		Details:        request.Details,
		Price:          db_models.RoundAmount(request.Price),
		Time:           request.Time,
		ImageURL:       request.ImageURL,
		GeoCoordinates: request.GeoCoordinates,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := toActivityResponse(activity)
	return &resp, nil
}

func (s *ActivityService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]response_models.ActivityResponse, error) {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, toActivityResponse(&activities[i]))
	}
	return out, nil
}

func (s *ActivityService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.activityRepo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrActivityNotFound
	}
	return nil
}

func (s *ActivityService) ownedTrip(ctx context.Context, userID, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := s.tripRepo.FindByIDForUser(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}
