package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/models/request_models"
	"voyage/internal/services"
	"voyage/pkg/utils"
)

type ActivityController struct {
	activityService services.ActivityServiceInterface
}

func NewActivityController(activityService services.ActivityServiceInterface) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// CreateActivity godoc
// @Summary Create an activity row
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body request_models.CreateActivityRequest true "Activity"
// @Success 201 {object} utils.APIResponse{data=response_models.ActivityResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities [post]
func (a *ActivityController) CreateActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	activity, err := a.activityService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, activity, "Activity created")
}

// GetTripActivities godoc
// @Summary List a trip's activity rows
// @Tags Activities
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse{data=[]response_models.ActivityResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/trip/{tripId} [get]
func (a *ActivityController) GetTripActivities(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "tripId", "trip")
	if !ok {
		return
	}

	activities, err := a.activityService.ListByTrip(c.Request.Context(), userID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activities, "Activities fetched successfully")
}

// DeleteActivity godoc
// @Summary Delete an activity row
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /activities/{id} [delete]
func (a *ActivityController) DeleteActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "activity")
	if !ok {
		return
	}

	if err := a.activityService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Activity removed")
}
