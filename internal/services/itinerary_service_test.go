package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/models/request_models"
	"voyage/internal/models/response_models"
	"voyage/pkg/utils"
)

func floatPtr(f float64) *float64 { return &f }

func spentMatchesItinerary(t *testing.T, trip *response_models.TripResponse) {
	t.Helper()
	it := itineraryOf(t, trip)
	assert.InDelta(t, it.TotalCost(), trip.Budget.Spent, 0.001)
	assert.GreaterOrEqual(t, trip.Budget.Spent, 0.0)
}

func TestItineraryService_BudgetScenario(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	trip := h.createTrip(t, userID, twoDayTrip(1000))
	tripID := uuid.MustParse(trip.ID)

	trip, err := h.itinerarySvc.AddActivity(ctx, userID, tripID, 1, request_models.AddActivityRequest{
		Time: "09:00", Location: "Belem Tower", Cost: floatPtr(200),
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, trip.Budget.Spent)
	spentMatchesItinerary(t, trip)
	dayOneID := itineraryOf(t, trip)[0].Activities[0].ID

	trip, err = h.itinerarySvc.AddActivity(ctx, userID, tripID, 2, request_models.AddActivityRequest{
		Time: "18:30", Location: "Fado show", Cost: floatPtr(150), Notes: "book ahead",
	})
	require.NoError(t, err)
	assert.Equal(t, 350.0, trip.Budget.Spent)
	spentMatchesItinerary(t, trip)

	trip, err = h.itinerarySvc.DeleteActivity(ctx, userID, tripID, 1, dayOneID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, trip.Budget.Spent)
	assert.Equal(t, 1000.0, trip.Budget.Total)
	spentMatchesItinerary(t, trip)

	rows := h.activities.forTrip(tripID)
	require.Len(t, rows, 1)
	assert.Equal(t, "Fado show", rows[0].Name)
	assert.Equal(t, "book ahead", rows[0].Details)
}

func TestItineraryService_DeleteUnknownActivityChangesNothing(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	trip := h.createTrip(t, userID, twoDayTrip(1000))
	tripID := uuid.MustParse(trip.ID)
	_, err := h.itinerarySvc.AddActivity(ctx, userID, tripID, 1, request_models.AddActivityRequest{Time: "09:00", Location: "Museum", Cost: floatPtr(80)})
	require.NoError(t, err)
	before := h.trips.stored(tripID)

	_, err = h.itinerarySvc.DeleteActivity(ctx, userID, tripID, 1, "does-not-exist")
	assert.ErrorIs(t, err, utils.ErrActivityNotFound)

	_, err = h.itinerarySvc.DeleteActivity(ctx, userID, tripID, 9, "does-not-exist")
	assert.ErrorIs(t, err, utils.ErrDayNotFound)

	after := h.trips.stored(tripID)
	assert.Equal(t, 80.0, after.Budget.Data().Spent)
	assert.Equal(t, before.Version, after.Version)
}

func TestItineraryService_DeleteClampsAtZero(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	trip := h.createTrip(t, userID, twoDayTrip(1000))
	tripID := uuid.MustParse(trip.ID)

	trip, err := h.itinerarySvc.AddActivity(ctx, userID, tripID, 1, request_models.AddActivityRequest{Time: "09:00", Location: "Museum", Cost: floatPtr(80)})
	require.NoError(t, err)
	actID := itineraryOf(t, trip)[0].Activities[0].ID

	// a client reset the budget below the itinerary total
	_, err = h.tripSvc.Update(ctx, userID, tripID, request_models.UpdateTripRequest{Budget: &request_models.BudgetInput{Total: 1000, Spent: 20}})
	require.NoError(t, err)

	trip, err = h.itinerarySvc.DeleteActivity(ctx, userID, tripID, 1, actID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, trip.Budget.Spent)
}

func TestItineraryService_AddValidation(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	trip := h.createTrip(t, userID, twoDayTrip(1000))
	tripID := uuid.MustParse(trip.ID)

	cases := map[string]request_models.AddActivityRequest{
		"missing time":      {Location: "x", Cost: floatPtr(1)},
		"bad time":          {Time: "9am", Location: "x", Cost: floatPtr(1)},
		"hour out of range": {Time: "24:00", Location: "x", Cost: floatPtr(1)},
		"missing location":  {Time: "09:00", Location: "  ", Cost: floatPtr(1)},
		"missing cost":      {Time: "09:00", Location: "x"},
		"negative cost":     {Time: "09:00", Location: "x", Cost: floatPtr(-5)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := h.itinerarySvc.AddActivity(ctx, userID, tripID, 1, req)
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
		})
	}

	_, err := h.itinerarySvc.AddActivity(ctx, userID, tripID, 3, request_models.AddActivityRequest{Time: "09:00", Location: "x", Cost: floatPtr(1)})
	assert.ErrorIs(t, err, utils.ErrDayNotFound)

	assert.Equal(t, 1, h.trips.stored(tripID).Version)
}

func TestItineraryService_AddWithoutItinerary(t *testing.T) {
	h := newHarness()
	userID := uuid.New()
	trip := h.createTrip(t, userID, request_models.CreateTripRequest{Location: "Nowhere"})

	_, err := h.itinerarySvc.AddActivity(context.Background(), userID, uuid.MustParse(trip.ID), 1, request_models.AddActivityRequest{Time: "09:00", Location: "x", Cost: floatPtr(1)})

	assert.ErrorIs(t, err, utils.ErrDayNotFound)
}

func TestItineraryService_AcceptSuggestion(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	trip := h.createTrip(t, userID, twoDayTrip(1000))
	tripID := uuid.MustParse(trip.ID)

	trip, err := h.itinerarySvc.AcceptSuggestion(ctx, userID, tripID, request_models.AcceptSuggestionRequest{
		Day: 2, Time: "14:30", Location: "Sintra", Cost: 120, Notes: "whole group",
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, trip.Budget.Spent)
	act := itineraryOf(t, trip)[1].Activities[0]
	assert.Equal(t, "ai", act.Source)
	assert.Equal(t, "Sintra", act.Location)

	_, err = h.itinerarySvc.AcceptSuggestion(ctx, userID, tripID, request_models.AcceptSuggestionRequest{Day: 1, Time: "10:00", Location: "Refund", Cost: -50})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = h.itinerarySvc.AcceptSuggestion(ctx, userID, tripID, request_models.AcceptSuggestionRequest{Day: 7, Time: "10:00", Location: "Faraway", Cost: 10})
	assert.ErrorIs(t, err, utils.ErrDayNotFound)

	_, err = h.itinerarySvc.AcceptSuggestion(ctx, userID, tripID, request_models.AcceptSuggestionRequest{Day: 0, Time: "10:00", Location: "Zero", Cost: 10})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	assert.Equal(t, 120.0, h.trips.stored(tripID).Budget.Data().Spent)
}

func TestItineraryService_ConcurrentWriteIsConflict(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	trip := h.createTrip(t, userID, twoDayTrip(1000))
	tripID := uuid.MustParse(trip.ID)

	h.trips.beforeSave = func() { h.trips.bump(tripID) }

	_, err := h.itinerarySvc.AddActivity(ctx, userID, tripID, 1, request_models.AddActivityRequest{Time: "09:00", Location: "Museum", Cost: floatPtr(80)})

	assert.ErrorIs(t, err, utils.ErrTripVersionStale)
	stored := h.trips.stored(tripID)
	assert.Equal(t, 0.0, stored.Budget.Data().Spent)
	it := itineraryOf(t, &response_models.TripResponse{TripDetails: []byte(stored.TripDetails)})
	assert.Empty(t, it[0].Activities)
}

func TestItineraryService_SpentStaysConsistent(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	userID := uuid.New()
	trip := h.createTrip(t, userID, twoDayTrip(1000))
	tripID := uuid.MustParse(trip.ID)

	costs := []float64{19.99, 0.01, 5.5, 100, 0.1, 0.2}
	var ids []string
	for i, c := range costs {
		trip, err := h.itinerarySvc.AddActivity(ctx, userID, tripID, i%2+1, request_models.AddActivityRequest{Time: "12:00", Location: "stop", Cost: floatPtr(c)})
		require.NoError(t, err)
		spentMatchesItinerary(t, trip)
		acts := itineraryOf(t, trip)[i%2].Activities
		ids = append(ids, acts[len(acts)-1].ID)
	}
	for i, id := range ids {
		trip, err := h.itinerarySvc.DeleteActivity(ctx, userID, tripID, i%2+1, id)
		require.NoError(t, err)
		spentMatchesItinerary(t, trip)
	}
	assert.Equal(t, 0.0, h.trips.stored(tripID).Budget.Data().Spent)
}
