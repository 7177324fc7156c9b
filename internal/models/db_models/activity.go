package db_models

import "github.com/google/uuid"

// Activity is the flat, queryable projection of one itinerary entry.
// DayNumber is nil for rows created directly rather than projected.
type Activity struct {
	BaseModel
	TripID         uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID         uuid.UUID `gorm:"type:uuid;index"`
	DayNumber      *int
	Name           string `gorm:"not null"`
	Details        string
	Price          float64 `gorm:"type:numeric(10,2)"`
	Time           string
	ImageURL       *string
	GeoCoordinates *string
}
