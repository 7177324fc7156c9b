package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"voyage/internal/models/db_models"
	"voyage/internal/models/response_models"
	"voyage/internal/repositories"
	mem "voyage/pkg/memcache"
	"voyage/pkg/utils"
)

const maxEstimateWrites = 2

// SuggestionProvider returns the raw text answer of an AI model.
type SuggestionProvider interface {
	Name() string
	Suggest(ctx context.Context, req utils.SuggestionRequest) (string, error)
}

type SuggestionServiceInterface interface {
	// Generate never fails because of the AI provider: upstream problems yield
	// an empty set flagged as degraded. Non-zero estimates are written to the budget.
	Generate(ctx context.Context, userID, tripID uuid.UUID) (*response_models.GenerateSuggestionsResponse, error)
}

type SuggestionService struct {
	tripRepo repositories.TripRepository
	provider SuggestionProvider
	cache    mem.Store
	timeout  time.Duration
	cacheTTL time.Duration
}

// NewSuggestionService accepts a nil provider, in which case every answer is degraded.
func NewSuggestionService(tripRepo repositories.TripRepository, provider SuggestionProvider, cache mem.Store, timeout, cacheTTL time.Duration) SuggestionServiceInterface {
	return &SuggestionService{
		tripRepo: tripRepo,
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		cacheTTL: cacheTTL,
	}
}

func (s *SuggestionService) Generate(ctx context.Context, userID, tripID uuid.UUID) (*response_models.GenerateSuggestionsResponse, error) {
	trip, err := loadOwnedTrip(ctx, s.tripRepo, userID, tripID)
	if err != nil {
		return nil, err
	}

	req := suggestionRequestFor(trip)
	set := s.suggest(ctx, req)

	if !set.Degraded && (set.EstimatedAccommodationCost > 0 || set.EstimatedTransportCost > 0) {
		if trip, err = s.applyEstimates(ctx, userID, tripID, set); err != nil {
			return nil, err
		}
	}

	return &response_models.GenerateSuggestionsResponse{
		Suggestions: set,
		Trip:        toTripResponse(trip),
	}, nil
}

// applyEstimates writes the estimates onto a freshly loaded trip. A write that
// loses the version race is retried once, then the trip is returned unchanged.
func (s *SuggestionService) applyEstimates(ctx context.Context, userID, tripID uuid.UUID, set response_models.SuggestionSet) (*db_models.Trip, error) {
	for attempt := 1; ; attempt++ {
		trip, err := loadOwnedTrip(ctx, s.tripRepo, userID, tripID)
		if err != nil {
			return nil, err
		}
		budget := trip.Budget.Data()
		if set.EstimatedAccommodationCost > 0 {
			budget.EstimatedAccommodation = db_models.RoundAmount(set.EstimatedAccommodationCost)
		}
		if set.EstimatedTransportCost > 0 {
			budget.EstimatedTransport = db_models.RoundAmount(set.EstimatedTransportCost)
		}
		current := trip.Budget
		trip.Budget = datatypes.NewJSONType(budget)

		err = saveTrip(ctx, s.tripRepo, trip, trip.Version)
		switch {
		case err == nil:
			return trip, nil
		case !errors.Is(err, utils.ErrTripVersionStale):
			return nil, err
		case attempt >= maxEstimateWrites:
			slog.WarnContext(ctx, "suggestion estimates not applied, trip keeps changing", "trip_id", tripID, "attempts", attempt)
			trip.Budget = current
			return trip, nil
		}
	}
}

func (s *SuggestionService) suggest(ctx context.Context, req utils.SuggestionRequest) response_models.SuggestionSet {
	key := req.CacheKey()
	if cached, ok := s.fromCache(ctx, key); ok {
		return *cached
	}

	if s.provider == nil {
		slog.InfoContext(ctx, "suggestions requested without a provider", "error", utils.ErrSuggestionsDisabled)
		return degraded("AI suggestions are not configured.")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	content, err := s.provider.Suggest(callCtx, req)
	if err != nil {
		slog.WarnContext(ctx, "suggestion provider failed", "provider", s.provider.Name(), "error", err, "duration", time.Since(start))
		return degraded("AI suggestions are unavailable right now.")
	}

	set, err := utils.ParseSuggestionSet(content)
	if err != nil {
		slog.WarnContext(ctx, "suggestion provider returned unusable output", "provider", s.provider.Name(), "error", err)
		return degraded("AI returned an answer that could not be read.")
	}
	slog.InfoContext(ctx, "suggestions generated", "provider", s.provider.Name(), "activities", len(set.SuggestedActivities), "duration", time.Since(start))

	s.toCache(ctx, key, set)
	return *set
}

func (s *SuggestionService) fromCache(ctx context.Context, key string) (*response_models.SuggestionSet, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "suggestion cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var set response_models.SuggestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		slog.WarnContext(ctx, "dropping unreadable cached suggestions", "key", key, "error", err)
		if err := s.cache.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "suggestion cache delete failed", "error", err)
		}
		return nil, false
	}
	return &set, true
}

func (s *SuggestionService) toCache(ctx context.Context, key string, set *response_models.SuggestionSet) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(set)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "suggestion cache write failed", "error", err)
	}
}

func degraded(summary string) response_models.SuggestionSet {
	return response_models.SuggestionSet{
		Summary:             summary,
		SuggestedActivities: []response_models.SuggestedActivity{},
		Degraded:            true,
	}
}

func suggestionRequestFor(trip *db_models.Trip) utils.SuggestionRequest {
	days := trip.DurationDays()
	if days == 0 {
		if it, found, err := db_models.ExtractItinerary(trip.TripDetails); err == nil && found {
			days = len(it)
		}
	}
	if days == 0 {
		days = 1
	}

	travelers := trip.Travelers.Data()
	return utils.SuggestionRequest{
		Destination:  trip.Location,
		Budget:       trip.Budget.Data().Total,
		DurationDays: days,
		Adults:       travelers.Adults,
		Children:     travelers.Children,
	}
}
