package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"voyage/internal/repositories"
	"voyage/internal/services"
)

var Module = fx.Provide(provideTripRepo, provideTripService, provideItineraryService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	activities services.ActivityServiceInterface,
	savedPlaces services.SavedPlaceServiceInterface,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, activities, savedPlaces)
}

func provideItineraryService(tripRepo repositories.TripRepository, activities services.ActivityServiceInterface) services.ItineraryServiceInterface {
	return services.NewItineraryService(tripRepo, activities)
}
