package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyage/internal/models/request_models"
	"voyage/internal/services"
	"voyage/pkg/utils"
)

type TripController struct {
	tripService      services.TripServiceInterface
	itineraryService services.ItineraryServiceInterface
}

func NewTripController(tripService services.TripServiceInterface, itineraryService services.ItineraryServiceInterface) *TripController {
	return &TripController{
		tripService:      tripService,
		itineraryService: itineraryService,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Create a trip. Dated trips without an itinerary get one empty day per date.
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip payload"
// @Success 201 {object} utils.APIResponse{data=response_models.TripResponse}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Trip created successfully")
}

// GetTrips godoc
// @Summary List trips
// @Description Paginated list of the caller's trips, newest first
// @Tags Trips
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse{data=response_models.TripListResponse}
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) GetTrips(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	trips, err := t.tripService.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetTrip godoc
// @Summary Get a trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse{data=response_models.TripResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id", "trip")
	if !ok {
		return
	}

	trip, err := t.tripService.Get(c.Request.Context(), userID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// UpdateTrip godoc
// @Summary Update a trip
// @Description Fields present in the body replace the stored ones. A budget replaces the whole budget.
// @Description When version is sent it must match the stored version, otherwise 409.
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.UpdateTripRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=response_models.TripResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [put]
func (t *TripController) UpdateTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id", "trip")
	if !ok {
		return
	}

	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.Update(c.Request.Context(), userID, tripID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [delete]
func (t *TripController) DeleteTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id", "trip")
	if !ok {
		return
	}

	if err := t.tripService.Delete(c.Request.Context(), userID, tripID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip removed")
}

// AddActivity godoc
// @Summary Add an activity to a day
// @Description Appends the activity to the itinerary day and adds its cost to budget.spent
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param day path int true "Day number"
// @Param request body request_models.AddActivityRequest true "Activity"
// @Success 201 {object} utils.APIResponse{data=response_models.TripResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/days/{day}/activities [post]
func (t *TripController) AddActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id", "trip")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}

	var req request_models.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.itineraryService.AddActivity(c.Request.Context(), userID, tripID, day, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Activity added")
}

// DeleteActivity godoc
// @Summary Remove an activity from a day
// @Description Removes the activity and subtracts its cost from budget.spent
// @Tags Itinerary
// @Produce json
// @Param id path string true "Trip ID"
// @Param day path int true "Day number"
// @Param activityId path string true "Itinerary activity ID"
// @Success 200 {object} utils.APIResponse{data=response_models.TripResponse}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/days/{day}/activities/{activityId} [delete]
func (t *TripController) DeleteActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id", "trip")
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}

	trip, err := t.itineraryService.DeleteActivity(c.Request.Context(), userID, tripID, day, c.Param("activityId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Activity removed")
}
