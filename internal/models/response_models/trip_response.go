package response_models

import "encoding/json"

type BudgetResponse struct {
	Total                  float64 `json:"total"`
	Spent                  float64 `json:"spent"`
	EstimatedAccommodation float64 `json:"estimated_accommodation"`
	EstimatedTransport     float64 `json:"estimated_transport"`
	Remaining              float64 `json:"remaining"`
}

type TravelersResponse struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

type TripResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Location    string            `json:"location"`
	Title       string            `json:"title"`
	StartDate   *string           `json:"start_date"`
	EndDate     *string           `json:"end_date"`
	Budget      BudgetResponse    `json:"budget"`
	Travelers   TravelersResponse `json:"travelers"`
	TripDetails json.RawMessage   `json:"trip_details"`
	// Plan is the parsed plan when the stored text is valid JSON, otherwise the raw text.
	Plan      any   `json:"plan,omitempty"`
	Version   int   `json:"version"`
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

type TripListResponse struct {
	Trips    []TripResponse `json:"trips"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int64          `json:"total"`
}
