package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/models/request_models"
	"voyage/internal/services"
	"voyage/pkg/utils"
)

type SavedPlaceController struct {
	savedPlaceService services.SavedPlaceServiceInterface
}

func NewSavedPlaceController(savedPlaceService services.SavedPlaceServiceInterface) *SavedPlaceController {
	return &SavedPlaceController{savedPlaceService: savedPlaceService}
}

// SavePlace godoc
// @Summary Save a place
// @Tags SavedPlaces
// @Accept json
// @Produce json
// @Param request body request_models.SavePlaceRequest true "Place"
// @Success 201 {object} utils.APIResponse{data=response_models.SavedPlaceResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /saved-places [post]
func (s *SavedPlaceController) SavePlace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.SavePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	place, err := s.savedPlaceService.Save(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, place, "Place saved")
}

// GetSavedPlaces godoc
// @Summary List saved places
// @Tags SavedPlaces
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.SavedPlaceResponse}
// @Security BearerAuth
// @Router /saved-places [get]
func (s *SavedPlaceController) GetSavedPlaces(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	places, err := s.savedPlaceService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Saved places fetched successfully")
}

// DeleteSavedPlace godoc
// @Summary Remove a saved place
// @Tags SavedPlaces
// @Produce json
// @Param id path string true "Saved place ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /saved-places/{id} [delete]
func (s *SavedPlaceController) DeleteSavedPlace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "saved place")
	if !ok {
		return
	}

	if err := s.savedPlaceService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Place removed")
}
