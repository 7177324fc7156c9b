package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voyage/pkg/middleware"
	"voyage/pkg/utils"
)

// currentUserID reads the id set by the JWT middleware and writes a 401 when it is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString(middleware.UserIDKey))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Not authorized")
		return uuid.Nil, false
	}
	return userID, true
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Day must be a positive number")
		return 0, false
	}
	return day, true
}
