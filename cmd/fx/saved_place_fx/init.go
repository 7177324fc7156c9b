package saved_place_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"voyage/internal/repositories"
	"voyage/internal/services"
)

var Module = fx.Provide(provideSavedPlaceRepo, provideSavedPlaceService)

func provideSavedPlaceRepo(db *gorm.DB) repositories.SavedPlaceRepository {
	return repositories.NewSavedPlaceRepository(db)
}

func provideSavedPlaceService(repo repositories.SavedPlaceRepository) services.SavedPlaceServiceInterface {
	return services.NewSavedPlaceService(repo)
}
