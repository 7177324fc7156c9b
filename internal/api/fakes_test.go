package api_test

import (
	"context"

	"github.com/google/uuid"

	"voyage/internal/models/db_models"
	"voyage/internal/models/request_models"
	"voyage/internal/models/response_models"
)

type fakeAccountService struct {
	register func(request_models.RegisterRequest) (*response_models.AuthResponse, error)
	login    func(request_models.LoginRequest) (*response_models.AuthResponse, error)
	google   func(request_models.GoogleLoginRequest) (*response_models.AuthResponse, error)
	me       func(uuid.UUID) (*response_models.UserResponse, error)
}

func (f *fakeAccountService) Register(_ context.Context, r request_models.RegisterRequest) (*response_models.AuthResponse, error) {
	return f.register(r)
}

func (f *fakeAccountService) Login(_ context.Context, r request_models.LoginRequest) (*response_models.AuthResponse, error) {
	return f.login(r)
}

func (f *fakeAccountService) GoogleLogin(_ context.Context, r request_models.GoogleLoginRequest) (*response_models.AuthResponse, error) {
	return f.google(r)
}

func (f *fakeAccountService) Me(_ context.Context, id uuid.UUID) (*response_models.UserResponse, error) {
	return f.me(id)
}

type fakeTripService struct {
	create func(uuid.UUID, request_models.CreateTripRequest) (*response_models.TripResponse, error)
	list   func(uuid.UUID, int, int) (*response_models.TripListResponse, error)
	get    func(uuid.UUID, uuid.UUID) (*response_models.TripResponse, error)
	update func(uuid.UUID, uuid.UUID, request_models.UpdateTripRequest) (*response_models.TripResponse, error)
	delete func(uuid.UUID, uuid.UUID) error
}

func (f *fakeTripService) Create(_ context.Context, userID uuid.UUID, r request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	return f.create(userID, r)
}

func (f *fakeTripService) List(_ context.Context, userID uuid.UUID, page, pageSize int) (*response_models.TripListResponse, error) {
	return f.list(userID, page, pageSize)
}

func (f *fakeTripService) Get(_ context.Context, userID, tripID uuid.UUID) (*response_models.TripResponse, error) {
	return f.get(userID, tripID)
}

func (f *fakeTripService) Update(_ context.Context, userID, tripID uuid.UUID, r request_models.UpdateTripRequest) (*response_models.TripResponse, error) {
	return f.update(userID, tripID, r)
}

func (f *fakeTripService) Delete(_ context.Context, userID, tripID uuid.UUID) error {
	return f.delete(userID, tripID)
}

type fakeItineraryService struct {
	add    func(uuid.UUID, uuid.UUID, int, request_models.AddActivityRequest) (*response_models.TripResponse, error)
	accept func(uuid.UUID, uuid.UUID, request_models.AcceptSuggestionRequest) (*response_models.TripResponse, error)
	remove func(uuid.UUID, uuid.UUID, int, string) (*response_models.TripResponse, error)
}

func (f *fakeItineraryService) AddActivity(_ context.Context, userID, tripID uuid.UUID, day int, r request_models.AddActivityRequest) (*response_models.TripResponse, error) {
	return f.add(userID, tripID, day, r)
}

func (f *fakeItineraryService) AcceptSuggestion(_ context.Context, userID, tripID uuid.UUID, r request_models.AcceptSuggestionRequest) (*response_models.TripResponse, error) {
	return f.accept(userID, tripID, r)
}

func (f *fakeItineraryService) DeleteActivity(_ context.Context, userID, tripID uuid.UUID, day int, activityID string) (*response_models.TripResponse, error) {
	return f.remove(userID, tripID, day, activityID)
}

type fakeSuggestionService struct {
	generate func(uuid.UUID, uuid.UUID) (*response_models.GenerateSuggestionsResponse, error)
}

func (f *fakeSuggestionService) Generate(_ context.Context, userID, tripID uuid.UUID) (*response_models.GenerateSuggestionsResponse, error) {
	return f.generate(userID, tripID)
}

type fakeActivityService struct {
	create func(uuid.UUID, request_models.CreateActivityRequest) (*response_models.ActivityResponse, error)
	list   func(uuid.UUID, uuid.UUID) ([]response_models.ActivityResponse, error)
	delete func(uuid.UUID, uuid.UUID) error
}

func (f *fakeActivityService) SyncFromTrip(context.Context, *db_models.Trip) error { return nil }

func (f *fakeActivityService) Create(_ context.Context, userID uuid.UUID, r request_models.CreateActivityRequest) (*response_models.ActivityResponse, error) {
	return f.create(userID, r)
}

func (f *fakeActivityService) ListByTrip(_ context.Context, userID, tripID uuid.UUID) ([]response_models.ActivityResponse, error) {
	return f.list(userID, tripID)
}

func (f *fakeActivityService) Delete(_ context.Context, userID, id uuid.UUID) error {
	return f.delete(userID, id)
}

type fakeSavedPlaceService struct {
	save   func(uuid.UUID, request_models.SavePlaceRequest) (*response_models.SavedPlaceResponse, error)
	list   func(uuid.UUID) ([]response_models.SavedPlaceResponse, error)
	delete func(uuid.UUID, uuid.UUID) error
}

func (f *fakeSavedPlaceService) Save(_ context.Context, userID uuid.UUID, r request_models.SavePlaceRequest) (*response_models.SavedPlaceResponse, error) {
	return f.save(userID, r)
}

func (f *fakeSavedPlaceService) EnsureSaved(context.Context, uuid.UUID, string, map[string]any) error {
	return nil
}

func (f *fakeSavedPlaceService) List(_ context.Context, userID uuid.UUID) ([]response_models.SavedPlaceResponse, error) {
	return f.list(userID)
}

func (f *fakeSavedPlaceService) Delete(_ context.Context, userID, id uuid.UUID) error {
	return f.delete(userID, id)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
