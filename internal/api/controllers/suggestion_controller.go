package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/models/request_models"
	"voyage/internal/services"
	"voyage/pkg/utils"
)

type SuggestionController struct {
	suggestionService services.SuggestionServiceInterface
	itineraryService  services.ItineraryServiceInterface
}

func NewSuggestionController(suggestionService services.SuggestionServiceInterface, itineraryService services.ItineraryServiceInterface) *SuggestionController {
	return &SuggestionController{
		suggestionService: suggestionService,
		itineraryService:  itineraryService,
	}
}

// GenerateSuggestions godoc
// @Summary Generate AI suggestions for a trip
// @Description Asks the configured AI provider for activities and cost estimates.
// @Description Provider failures return an empty set with degraded=true.
// @Tags Suggestions
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse{data=response_models.GenerateSuggestionsResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/suggestions [post]
func (s *SuggestionController) GenerateSuggestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id", "trip")
	if !ok {
		return
	}

	resp, err := s.suggestionService.Generate(c.Request.Context(), userID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, resp.Suggestions.Summary)
}

// AcceptSuggestion godoc
// @Summary Accept a suggested activity
// @Description Adds the suggestion to its itinerary day and its cost to budget.spent
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.AcceptSuggestionRequest true "Suggested activity"
// @Success 201 {object} utils.APIResponse{data=response_models.TripResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/suggestions/accept [post]
func (s *SuggestionController) AcceptSuggestion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id", "trip")
	if !ok {
		return
	}

	var req request_models.AcceptSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := s.itineraryService.AcceptSuggestion(c.Request.Context(), userID, tripID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Suggestion added to itinerary")
}
