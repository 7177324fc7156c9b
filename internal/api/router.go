// Package api assembles the gin engine: middleware chain and route table.
package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"voyage/internal/api/controllers"
	"voyage/pkg/middleware"
)

// Handlers groups every controller mounted by NewRouter.
type Handlers struct {
	Account    *controllers.AccountController
	Trip       *controllers.TripController
	Suggestion *controllers.SuggestionController
	Activity   *controllers.ActivityController
	SavedPlace *controllers.SavedPlaceController
	Health     *controllers.HealthController
}

type RouterOptions struct {
	CORSOrigins []string
	Tokens      middleware.TokenValidator
	Logger      *slog.Logger
}

func NewRouter(opts RouterOptions, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	if opts.Logger != nil {
		r.Use(middleware.SlogLogger(opts.Logger))
	}
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))

	RegisterRoutes(r, opts.Tokens, h)

	return r
}

func RegisterRoutes(r *gin.Engine, tokens middleware.TokenValidator, h Handlers) {
	auth := middleware.JWTAuthMiddleware(tokens)
	root := r.Group("/api")

	root.GET("/health", h.Health.Health)

	users := root.Group("/users")
	users.POST("", h.Account.Register)
	users.POST("/login", h.Account.Login)
	users.POST("/google", h.Account.GoogleLogin)
	users.GET("/me", auth, h.Account.Me)

	trips := root.Group("/trips", auth)
	trips.POST("", h.Trip.CreateTrip)
	trips.GET("", h.Trip.GetTrips)
	trips.GET("/:id", h.Trip.GetTrip)
	trips.PUT("/:id", h.Trip.UpdateTrip)
	trips.DELETE("/:id", h.Trip.DeleteTrip)
	trips.POST("/:id/days/:day/activities", h.Trip.AddActivity)
	trips.DELETE("/:id/days/:day/activities/:activityId", h.Trip.DeleteActivity)
	trips.POST("/:id/suggestions", h.Suggestion.GenerateSuggestions)
	trips.POST("/:id/suggestions/accept", h.Suggestion.AcceptSuggestion)

	activities := root.Group("/activities", auth)
	activities.POST("", h.Activity.CreateActivity)
	activities.GET("/trip/:tripId", h.Activity.GetTripActivities)
	activities.DELETE("/:id", h.Activity.DeleteActivity)

	places := root.Group("/saved-places", auth)
	places.POST("", h.SavedPlace.SavePlace)
	places.GET("", h.SavedPlace.GetSavedPlaces)
	places.DELETE("/:id", h.SavedPlace.DeleteSavedPlace)
}
