package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps a service error onto the response envelope.
// Validation errors keep the detail that was wrapped around ErrInvalidInput.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrMalformedItinerary):
		RespondError(c, http.StatusBadRequest, "Trip itinerary is malformed")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrGoogleVerification):
		RespondError(c, http.StatusUnauthorized, "Failed to verify Google token")
	case errors.Is(err, ErrTripNotFound):
		RespondError(c, http.StatusNotFound, "Trip not found")
	case errors.Is(err, ErrDayNotFound):
		RespondError(c, http.StatusNotFound, "Day not found in itinerary")
	case errors.Is(err, ErrActivityNotFound):
		RespondError(c, http.StatusNotFound, "Activity not found")
	case errors.Is(err, ErrSavedPlaceNotFound):
		RespondError(c, http.StatusNotFound, "Saved place not found")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "User already exists")
	case errors.Is(err, ErrPlaceAlreadySaved):
		RespondError(c, http.StatusConflict, "Place already saved")
	case errors.Is(err, ErrTripVersionStale):
		RespondError(c, http.StatusConflict, "Trip was modified by another request, reload and retry")
	case errors.Is(err, ErrDatabaseError):
		slog.ErrorContext(c.Request.Context(), "database error", "error", err, "trace_id", c.GetString("trace_id"))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled service error", "error", err, "trace_id", c.GetString("trace_id"))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage strips the sentinel prefix so "invalid input: location is required"
// is reported as "location is required".
func validationMessage(err error) string {
	msg := err.Error()
	prefix := ErrInvalidInput.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
