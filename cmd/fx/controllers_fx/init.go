package controllers_fx

import (
	"go.uber.org/fx"

	"voyage/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewSuggestionController),
	fx.Provide(controllers.NewActivityController),
	fx.Provide(controllers.NewSavedPlaceController),
	fx.Provide(controllers.NewHealthController))
