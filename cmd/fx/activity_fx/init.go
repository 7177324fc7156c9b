package activity_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"voyage/internal/repositories"
	"voyage/internal/services"
)

var Module = fx.Provide(provideActivityRepo, provideActivityService)

func provideActivityRepo(db *gorm.DB) repositories.ActivityRepository {
	return repositories.NewActivityRepository(db)
}

func provideActivityService(activityRepo repositories.ActivityRepository, tripRepo repositories.TripRepository) services.ActivityServiceInterface {
	return services.NewActivityService(activityRepo, tripRepo)
}
