package response_models

type SuggestedActivity struct {
	Day      int     `json:"day"`
	Time     string  `json:"time"`
	Location string  `json:"location"`
	Cost     float64 `json:"cost"`
	Notes    string  `json:"notes"`
}

// SuggestionSet is the decoded AI answer. Degraded marks an empty set produced
// because the provider failed or answered with something unusable.
type SuggestionSet struct {
	Summary                    string              `json:"summary"`
	EstimatedAccommodationCost float64             `json:"estimated_accommodation_cost"`
	EstimatedTransportCost     float64             `json:"estimated_transport_cost"`
	SuggestedActivities        []SuggestedActivity `json:"suggested_activities"`
	Degraded                   bool                `json:"degraded"`
}

type GenerateSuggestionsResponse struct {
	Suggestions SuggestionSet `json:"suggestions"`
	Trip        *TripResponse `json:"trip"`
}
