package request_models

import "encoding/json"

type BudgetInput struct {
	Total                  float64 `json:"total" binding:"gte=0"`
	Spent                  float64 `json:"spent" binding:"gte=0"`
	EstimatedAccommodation float64 `json:"estimated_accommodation" binding:"gte=0"`
	EstimatedTransport     float64 `json:"estimated_transport" binding:"gte=0"`
}

type TravelersInput struct {
	Adults   int `json:"adults" binding:"gte=1"`
	Children int `json:"children" binding:"gte=0"`
}

// CreateTripRequest dates are YYYY-MM-DD. TripDetails may be an object or a
// JSON-encoded string of one; Plan may be any JSON value and is stored as text.
type CreateTripRequest struct {
	Location    string          `json:"location"`
	Title       string          `json:"title"`
	StartDate   *string         `json:"start_date"`
	EndDate     *string         `json:"end_date"`
	Budget      *BudgetInput    `json:"budget"`
	Travelers   *TravelersInput `json:"travelers"`
	TripDetails json.RawMessage `json:"trip_details"`
	Plan        json.RawMessage `json:"plan"`
}

// UpdateTripRequest fields are applied only when present. Version, when set,
// must match the stored version.
type UpdateTripRequest struct {
	Location    *string         `json:"location"`
	Title       *string         `json:"title"`
	StartDate   *string         `json:"start_date"`
	EndDate     *string         `json:"end_date"`
	Budget      *BudgetInput    `json:"budget"`
	Travelers   *TravelersInput `json:"travelers"`
	TripDetails json.RawMessage `json:"trip_details"`
	Plan        json.RawMessage `json:"plan"`
	Version     *int            `json:"version"`
}

type AddActivityRequest struct {
	Time     string   `json:"time"`
	Location string   `json:"location"`
	Cost     *float64 `json:"cost"`
	Notes    string   `json:"notes"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

type AcceptSuggestionRequest struct {
	Day      int     `json:"day"`
	Time     string  `json:"time"`
	Location string  `json:"location"`
	Cost     float64 `json:"cost"`
	Notes    string  `json:"notes"`
}
