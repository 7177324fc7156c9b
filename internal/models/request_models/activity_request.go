package request_models

type CreateActivityRequest struct {
	TripID         string  `json:"trip_id" binding:"required,uuid"`
	Name           string  `json:"name"`
	Details        string  `json:"details"`
	Price          float64 `json:"price" binding:"gte=0"`
	Time           string  `json:"time"`
	ImageURL       *string `json:"image_url"`
	GeoCoordinates *string `json:"geo_coordinates"`
}

type SavePlaceRequest struct {
	PlaceName    string         `json:"place_name"`
	PlaceDetails map[string]any `json:"place_details"`
}
