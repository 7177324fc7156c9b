package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Budget struct {
	Total                  float64 `json:"total"`
	Spent                  float64 `json:"spent"`
	EstimatedAccommodation float64 `json:"estimated_accommodation"`
	EstimatedTransport     float64 `json:"estimated_transport"`
}

type Travelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

func DefaultTravelers() Travelers {
	return Travelers{Adults: 1}
}

// Trip is the aggregate root. TripDetails is owned by the client; the
// server only interprets its "itinerary" key.
type Trip struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Location    string    `gorm:"not null"`
	Title       string
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	Budget      datatypes.JSONType[Budget]
	Travelers   datatypes.JSONType[Travelers]
	TripDetails datatypes.JSON
	Plan        *string
	Version     int `gorm:"not null;default:1"`

	Activities []Activity `gorm:"constraint:OnDelete:CASCADE"`
}

// DurationDays counts calendar days between the dates inclusive, 0 when either is missing.
func (t *Trip) DurationDays() int {
	if t.StartDate == nil || t.EndDate == nil || t.EndDate.Before(*t.StartDate) {
		return 0
	}
	return int(t.EndDate.Sub(*t.StartDate).Hours()/24) + 1
}
