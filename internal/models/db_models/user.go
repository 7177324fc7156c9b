package db_models

const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

type User struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	AuthProvider string `gorm:"default:local"`
	AvatarURL    *string

	Trips       []Trip
	SavedPlaces []SavedPlace
}
