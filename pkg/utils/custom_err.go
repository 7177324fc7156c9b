package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrDatabaseError      = errors.New("database error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrGoogleVerification = errors.New("failed to verify google token")

	ErrTripNotFound       = errors.New("trip not found")
	ErrDayNotFound        = errors.New("day not found in itinerary")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrTripVersionStale   = errors.New("trip was modified by another request")
	ErrMalformedItinerary = errors.New("malformed itinerary")

	ErrSavedPlaceNotFound = errors.New("saved place not found")
	ErrPlaceAlreadySaved  = errors.New("place already saved")

	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI provider")
	ErrSuggestionsDisabled    = errors.New("no suggestion provider configured")
)
