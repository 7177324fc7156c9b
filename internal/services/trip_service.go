package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"voyage/internal/models/db_models"
	"voyage/internal/models/request_models"
	"voyage/internal/models/response_models"
	"voyage/internal/repositories"
	"voyage/pkg/utils"
)

const maxPageSize = 100

type TripServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, request request_models.CreateTripRequest) (*response_models.TripResponse, error)
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*response_models.TripListResponse, error)
	Get(ctx context.Context, userID, tripID uuid.UUID) (*response_models.TripResponse, error)
	// Update merges the present fields, persists, then rebuilds the activity projection best-effort.
	Update(ctx context.Context, userID, tripID uuid.UUID, request request_models.UpdateTripRequest) (*response_models.TripResponse, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

type TripService struct {
	tripRepo    repositories.TripRepository
	activities  ActivityServiceInterface
	savedPlaces SavedPlaceServiceInterface
}

func NewTripService(tripRepo repositories.TripRepository, activities ActivityServiceInterface, savedPlaces SavedPlaceServiceInterface) TripServiceInterface {
	return &TripService{
		tripRepo:    tripRepo,
		activities:  activities,
		savedPlaces: savedPlaces,
	}
}

func (s *TripService) Create(ctx context.Context, userID uuid.UUID, request request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	location := strings.TrimSpace(request.Location)
	if location == "" {
		return nil, fmt.Errorf("%w: please add a location", utils.ErrInvalidInput)
	}

	trip := &db_models.Trip{
		UserID:   userID,
		Location: location,
		Title:    strings.TrimSpace(request.Title),
		Version:  1,
	}
	if trip.Title == "" {
		trip.Title = location
	}

	var err error
	if trip.StartDate, err = parseOptionalDate("start_date", request.StartDate); err != nil {
		return nil, err
	}
	if trip.EndDate, err = parseOptionalDate("end_date", request.EndDate); err != nil {
		return nil, err
	}
	if err := validateDateOrder(trip.StartDate, trip.EndDate); err != nil {
		return nil, err
	}

	budget := db_models.Budget{}
	if request.Budget != nil {
		if err := validateBudget(request.Budget); err != nil {
			return nil, err
		}
		budget.Total = request.Budget.Total
		budget.EstimatedAccommodation = request.Budget.EstimatedAccommodation
		budget.EstimatedTransport = request.Budget.EstimatedTransport
	}

	travelers := db_models.DefaultTravelers()
	if request.Travelers != nil {
		if err := validateTravelers(request.Travelers); err != nil {
			return nil, err
		}
		travelers = db_models.Travelers{Adults: request.Travelers.Adults, Children: request.Travelers.Children}
	}
	trip.Travelers = datatypes.NewJSONType(travelers)

	details, err := normalizeDetails(request.TripDetails)
	if err != nil {
		return nil, err
	}

	itinerary, found, err := db_models.ExtractItinerary(details)
	if err != nil {
		return nil, fmt.Errorf("%w: trip_details.itinerary is malformed", utils.ErrInvalidInput)
	}
	switch {
	case found:
		if err := validateItinerary(itinerary); err != nil {
			return nil, err
		}
		itinerary.EnsureIDs()
	case trip.StartDate != nil && trip.EndDate != nil:
		itinerary = db_models.SeedDays(*trip.StartDate, *trip.EndDate)
		found = true
	}
	if found {
		if details, err = db_models.WithItinerary(details, itinerary); err != nil {
			return nil, fmt.Errorf("encode itinerary: %w", err)
		}
	}
	trip.TripDetails = details

	budget.Spent = itinerary.TotalCost()
	trip.Budget = datatypes.NewJSONType(budget)

	if trip.Plan, err = normalizePlan(request.Plan); err != nil {
		return nil, err
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	placeDetails := map[string]any{
		"trip_id": trip.ID.String(),
		"budget":  budget.Total,
	}
	if trip.StartDate != nil {
		placeDetails["start_date"] = *formatDate(trip.StartDate)
	}
	if trip.EndDate != nil {
		placeDetails["end_date"] = *formatDate(trip.EndDate)
	}
	if err := s.savedPlaces.EnsureSaved(ctx, userID, location, placeDetails); err != nil {
		slog.WarnContext(ctx, "could not save destination", "trip_id", trip.ID, "error", err)
	}

	if len(itinerary) > 0 {
		syncBestEffort(ctx, s.activities, trip)
	}

	return toTripResponse(trip), nil
}

func (s *TripService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*response_models.TripListResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	trips, total, err := s.tripRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := &response_models.TripListResponse{
		Trips:    make([]response_models.TripResponse, 0, len(trips)),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	for i := range trips {
		resp.Trips = append(resp.Trips, *toTripResponse(&trips[i]))
	}
	return resp, nil
}

func (s *TripService) Get(ctx context.Context, userID, tripID uuid.UUID) (*response_models.TripResponse, error) {
	trip, err := loadOwnedTrip(ctx, s.tripRepo, userID, tripID)
	if err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}

func (s *TripService) Update(ctx context.Context, userID, tripID uuid.UUID, request request_models.UpdateTripRequest) (*response_models.TripResponse, error) {
	trip, err := loadOwnedTrip(ctx, s.tripRepo, userID, tripID)
	if err != nil {
		return nil, err
	}

	if request.Location != nil {
		if location := strings.TrimSpace(*request.Location); location != "" {
			trip.Location = location
		}
	}
	if request.Title != nil {
		trip.Title = strings.TrimSpace(*request.Title)
		if trip.Title == "" {
			trip.Title = trip.Location
		}
	}
	if request.StartDate != nil {
		if trip.StartDate, err = parseOptionalDate("start_date", request.StartDate); err != nil {
			return nil, err
		}
	}
	if request.EndDate != nil {
		if trip.EndDate, err = parseOptionalDate("end_date", request.EndDate); err != nil {
			return nil, err
		}
	}
	if err := validateDateOrder(trip.StartDate, trip.EndDate); err != nil {
		return nil, err
	}
	if request.Budget != nil {
		if err := validateBudget(request.Budget); err != nil {
			return nil, err
		}
		trip.Budget = datatypes.NewJSONType(db_models.Budget{
			Total:                  request.Budget.Total,
			Spent:                  request.Budget.Spent,
			EstimatedAccommodation: request.Budget.EstimatedAccommodation,
			EstimatedTransport:     request.Budget.EstimatedTransport,
		})
	}
	if request.Travelers != nil {
		if err := validateTravelers(request.Travelers); err != nil {
			return nil, err
		}
		trip.Travelers = datatypes.NewJSONType(db_models.Travelers{
			Adults:   request.Travelers.Adults,
			Children: request.Travelers.Children,
		})
	}
	if isPresent(request.TripDetails) {
		details, err := normalizeDetails(request.TripDetails)
		if err != nil {
			return nil, err
		}
		// A malformed itinerary is stored as sent and skipped by the projection.
		if itinerary, found, err := db_models.ExtractItinerary(details); err == nil && found {
			if err := validateItinerary(itinerary); err != nil {
				return nil, err
			}
			// Give new activities ids so they can be deleted individually later.
			if itinerary.EnsureIDs() {
				if withIDs, err := db_models.WithItinerary(details, itinerary); err == nil {
					details = withIDs
				}
			}
		}
		trip.TripDetails = details
	}
	if isPresent(request.Plan) {
		if trip.Plan, err = normalizePlan(request.Plan); err != nil {
			return nil, err
		}
	}

	expectedVersion := 0
	if request.Version != nil {
		expectedVersion = *request.Version
		if expectedVersion < 1 {
			return nil, fmt.Errorf("%w: version must be positive", utils.ErrInvalidInput)
		}
	}
	if err := saveTrip(ctx, s.tripRepo, trip, expectedVersion); err != nil {
		return nil, err
	}

	syncBestEffort(ctx, s.activities, trip)

	return toTripResponse(trip), nil
}

func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	deleted, err := s.tripRepo.Delete(ctx, tripID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrTripNotFound
	}
	return nil
}

func loadOwnedTrip(ctx context.Context, repo repositories.TripRepository, userID, tripID uuid.UUID) (*db_models.Trip, error) {
	trip, err := repo.FindByIDForUser(ctx, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func saveTrip(ctx context.Context, repo repositories.TripRepository, trip *db_models.Trip, expectedVersion int) error {
	if err := repo.Save(ctx, trip, expectedVersion); err != nil {
		if errors.Is(err, repositories.ErrStaleTrip) {
			return utils.ErrTripVersionStale
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// parseOptionalDate accepts YYYY-MM-DD or RFC 3339. An empty string clears the date.
func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", utils.ErrInvalidInput, field)
}

func validateDateOrder(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end_date must not be before start_date", utils.ErrInvalidInput)
	}
	return nil
}

func validateBudget(b *request_models.BudgetInput) error {
	if b.Total < 0 || b.Spent < 0 || b.EstimatedAccommodation < 0 || b.EstimatedTransport < 0 {
		return fmt.Errorf("%w: budget amounts must not be negative", utils.ErrInvalidInput)
	}
	return nil
}

func validateTravelers(t *request_models.TravelersInput) error {
	if t.Adults < 1 || t.Children < 0 {
		return fmt.Errorf("%w: travelers need at least one adult and no negative children", utils.ErrInvalidInput)
	}
	return nil
}

func validateItinerary(it db_models.Itinerary) error {
	seen := map[int]bool{}
	for _, day := range it {
		if day.DayNumber < 1 {
			return fmt.Errorf("%w: day_number must be at least 1", utils.ErrInvalidInput)
		}
		if seen[day.DayNumber] {
			return fmt.Errorf("%w: day %d appears more than once", utils.ErrInvalidInput, day.DayNumber)
		}
		seen[day.DayNumber] = true
		for _, act := range day.Activities {
			if act.Cost < 0 {
				return fmt.Errorf("%w: activity cost must not be negative", utils.ErrInvalidInput)
			}
		}
	}
	return nil
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// normalizeDetails accepts a JSON object or a string holding one.
func normalizeDetails(raw json.RawMessage) (datatypes.JSON, error) {
	if !isPresent(raw) {
		return nil, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("%w: trip_details is not valid JSON", utils.ErrInvalidInput)
		}
		trimmed = bytes.TrimSpace([]byte(inner))
		if len(trimmed) == 0 {
			return nil, nil
		}
	}

	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: trip_details must be a JSON object", utils.ErrInvalidInput)
	}
	return datatypes.JSON(append([]byte(nil), trimmed...)), nil
}

// normalizePlan stores strings as-is and any other JSON value in its encoded form.
func normalizePlan(raw json.RawMessage) (*string, error) {
	if !isPresent(raw) {
		return nil, nil
	}
	trimmed := bytes.TrimSpace(raw)

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("%w: plan is not valid JSON", utils.ErrInvalidInput)
		}
		return &s, nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return nil, fmt.Errorf("%w: plan is not valid JSON", utils.ErrInvalidInput)
	}
	s := compact.String()
	return &s, nil
}
