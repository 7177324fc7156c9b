package response_models

type ActivityResponse struct {
	ID             string  `json:"id"`
	TripID         string  `json:"trip_id"`
	UserID         string  `json:"user_id"`
	DayNumber      *int    `json:"day_number"`
	Name           string  `json:"name"`
	Details        string  `json:"details"`
	Price          float64 `json:"price"`
	Time           string  `json:"time,omitempty"`
	ImageURL       *string `json:"image_url"`
	GeoCoordinates *string `json:"geo_coordinates"`
	CreatedAt      int64   `json:"created_at"`
}

type SavedPlaceResponse struct {
	ID           string         `json:"id"`
	PlaceName    string         `json:"place_name"`
	PlaceDetails map[string]any `json:"place_details"`
	CreatedAt    int64          `json:"created_at"`
}
