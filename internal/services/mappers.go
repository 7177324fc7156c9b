package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"voyage/internal/models/db_models"
	"voyage/internal/models/response_models"
)

func toUserResponse(u *db_models.User) response_models.UserResponse {
	return response_models.UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		AuthProvider: u.AuthProvider,
		AvatarURL:    u.AvatarURL,
	}
}

func toTripResponse(t *db_models.Trip) *response_models.TripResponse {
	budget := t.Budget.Data()
	travelers := t.Travelers.Data()

	resp := &response_models.TripResponse{
		ID:        t.ID.String(),
		UserID:    t.UserID.String(),
		Location:  t.Location,
		Title:     t.Title,
		StartDate: formatDate(t.StartDate),
		EndDate:   formatDate(t.EndDate),
		Budget: response_models.BudgetResponse{
			Total:                  budget.Total,
			Spent:                  budget.Spent,
			EstimatedAccommodation: budget.EstimatedAccommodation,
			EstimatedTransport:     budget.EstimatedTransport,
			Remaining:              db_models.RoundAmount(budget.Total - budget.Spent),
		},
		Travelers: response_models.TravelersResponse{
			Adults:   travelers.Adults,
			Children: travelers.Children,
		},
		Version:   t.Version,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	if len(t.TripDetails) > 0 {
		resp.TripDetails = json.RawMessage(t.TripDetails)
	}

	if t.Plan != nil {
		var parsed any
		if err := json.Unmarshal([]byte(*t.Plan), &parsed); err == nil {
			resp.Plan = parsed
		} else {
			resp.Plan = *t.Plan
		}
	}

	return resp
}

func toActivityResponse(a *db_models.Activity) response_models.ActivityResponse {
	return response_models.ActivityResponse{
		ID:             a.ID.String(),
		TripID:         a.TripID.String(),
		UserID:         a.UserID.String(),
		DayNumber:      a.DayNumber,
		Name:           a.Name,
		Details:        a.Details,
		Price:          a.Price,
		Time:           a.Time,
		ImageURL:       a.ImageURL,
		GeoCoordinates: a.GeoCoordinates,
		CreatedAt:      a.CreatedAt,
	}
}

func toSavedPlaceResponse(p *db_models.SavedPlace) response_models.SavedPlaceResponse {
	details := map[string]any{}
	if len(p.PlaceDetails) > 0 {
		if err := json.Unmarshal(p.PlaceDetails, &details); err != nil {
			slog.Warn("saved place details are not a JSON object", "saved_place_id", p.ID, "error", err)
		}
	}
	return response_models.SavedPlaceResponse{
		ID:           p.ID.String(),
		PlaceName:    p.PlaceName,
		PlaceDetails: details,
		CreatedAt:    p.CreatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
