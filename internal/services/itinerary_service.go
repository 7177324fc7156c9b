package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"voyage/internal/models/db_models"
	"voyage/internal/models/request_models"
	"voyage/internal/models/response_models"
	"voyage/internal/repositories"
	"voyage/pkg/utils"
)

var clockTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ItineraryServiceInterface keeps budget.spent equal to the summed cost of the
// activities in the itinerary. Every write is one compare-and-swap row update.
type ItineraryServiceInterface interface {
	AddActivity(ctx context.Context, userID, tripID uuid.UUID, day int, request request_models.AddActivityRequest) (*response_models.TripResponse, error)
	AcceptSuggestion(ctx context.Context, userID, tripID uuid.UUID, request request_models.AcceptSuggestionRequest) (*response_models.TripResponse, error)
	DeleteActivity(ctx context.Context, userID, tripID uuid.UUID, day int, activityID string) (*response_models.TripResponse, error)
}

type ItineraryService struct {
	tripRepo   repositories.TripRepository
	activities ActivityServiceInterface
}

func NewItineraryService(tripRepo repositories.TripRepository, activities ActivityServiceInterface) ItineraryServiceInterface {
	return &ItineraryService{
		tripRepo:   tripRepo,
		activities: activities,
	}
}

func (s *ItineraryService) AddActivity(ctx context.Context, userID, tripID uuid.UUID, day int, request request_models.AddActivityRequest) (*response_models.TripResponse, error) {
	if request.Cost == nil {
		return nil, fmt.Errorf("%w: cost is required", utils.ErrInvalidInput)
	}
	act, err := newItineraryActivity(request.Time, request.Location, *request.Cost, request.Notes, db_models.ActivitySourceManual)
	if err != nil {
		return nil, err
	}
	act.Lat, act.Lng = request.Lat, request.Lng

	return s.appendActivity(ctx, userID, tripID, day, act)
}

// AcceptSuggestion trusts the suggested cost as the whole-party total.
func (s *ItineraryService) AcceptSuggestion(ctx context.Context, userID, tripID uuid.UUID, request request_models.AcceptSuggestionRequest) (*response_models.TripResponse, error) {
	if request.Day < 1 {
		return nil, fmt.Errorf("%w: day must be at least 1", utils.ErrInvalidInput)
	}
	act, err := newItineraryActivity(request.Time, request.Location, request.Cost, request.Notes, db_models.ActivitySourceAI)
	if err != nil {
		return nil, err
	}

	return s.appendActivity(ctx, userID, tripID, request.Day, act)
}

func (s *ItineraryService) DeleteActivity(ctx context.Context, userID, tripID uuid.UUID, day int, activityID string) (*response_models.TripResponse, error) {
	return s.mutate(ctx, userID, tripID, func(it db_models.Itinerary, budget *db_models.Budget) (db_models.Itinerary, error) {
		di := it.DayIndex(day)
		if di < 0 {
			return nil, utils.ErrDayNotFound
		}
		removed, ok := it.RemoveActivity(di, activityID)
		if !ok {
			return nil, utils.ErrActivityNotFound
		}
		budget.Spent = math.Max(0, db_models.RoundAmount(budget.Spent-removed.Cost))
		return it, nil
	})
}

func (s *ItineraryService) appendActivity(ctx context.Context, userID, tripID uuid.UUID, day int, act db_models.ItineraryActivity) (*response_models.TripResponse, error) {
	return s.mutate(ctx, userID, tripID, func(it db_models.Itinerary, budget *db_models.Budget) (db_models.Itinerary, error) {
		di := it.DayIndex(day)
		if di < 0 {
			return nil, utils.ErrDayNotFound
		}
		it[di].Activities = append(it[di].Activities, act)
		budget.Spent = db_models.RoundAmount(budget.Spent + act.Cost)
		return it, nil
	})
}

type itineraryMutation func(it db_models.Itinerary, budget *db_models.Budget) (db_models.Itinerary, error)

// mutate loads the trip, applies fn, and writes itinerary and budget together
// guarded by the version that was loaded. The projection is rebuilt afterwards.
func (s *ItineraryService) mutate(ctx context.Context, userID, tripID uuid.UUID, fn itineraryMutation) (*response_models.TripResponse, error) {
	trip, err := loadOwnedTrip(ctx, s.tripRepo, userID, tripID)
	if err != nil {
		return nil, err
	}

	itinerary, found, err := db_models.ExtractItinerary(trip.TripDetails)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedItinerary, err)
	}
	if !found {
		return nil, utils.ErrDayNotFound
	}

	budget := trip.Budget.Data()
	itinerary, err = fn(itinerary, &budget)
	if err != nil {
		return nil, err
	}

	details, err := db_models.WithItinerary(trip.TripDetails, itinerary)
	if err != nil {
		return nil, fmt.Errorf("encode itinerary: %w", err)
	}
	trip.TripDetails = details
	trip.Budget = datatypes.NewJSONType(budget)

	if err := saveTrip(ctx, s.tripRepo, trip, trip.Version); err != nil {
		return nil, err
	}

	syncBestEffort(ctx, s.activities, trip)

	return toTripResponse(trip), nil
}

func newItineraryActivity(clock, location string, cost float64, notes, source string) (db_models.ItineraryActivity, error) {
	clock = strings.TrimSpace(clock)
	location = strings.TrimSpace(location)

	switch {
	case clock == "":
		return db_models.ItineraryActivity{}, fmt.Errorf("%w: time is required", utils.ErrInvalidInput)
	case !clockTime.MatchString(clock):
		return db_models.ItineraryActivity{}, fmt.Errorf("%w: time must be HH:MM", utils.ErrInvalidInput)
	case location == "":
		return db_models.ItineraryActivity{}, fmt.Errorf("%w: location is required", utils.ErrInvalidInput)
	case cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0):
		return db_models.ItineraryActivity{}, fmt.Errorf("%w: cost must be a non-negative number", utils.ErrInvalidInput)
	}

	return db_models.ItineraryActivity{
		ID:       uuid.NewString(),
		Time:     clock,
		Location: location,
		Cost:     db_models.RoundAmount(cost),
		Notes:    notes,
		Source:   source,
	}, nil
}
