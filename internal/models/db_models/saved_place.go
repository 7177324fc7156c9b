package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SavedPlace struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	PlaceName    string    `gorm:"not null"`
	PlaceDetails datatypes.JSON
}
