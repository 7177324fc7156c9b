package db_models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActivitySourceManual = "manual"
	ActivitySourceAI     = "ai"

	itineraryKey = "itinerary"
)

var ErrItineraryShape = errors.New("trip details are not a JSON object")

type ItineraryActivity struct {
	ID       string   `json:"id"`
	Time     string   `json:"time"`
	Location string   `json:"location"`
	Name     string   `json:"name,omitempty"`
	Cost     float64  `json:"cost"`
	Notes    string   `json:"notes,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Source   string   `json:"source,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

type DayPlan struct {
	DayNumber  int                 `json:"day_number"`
	Date       string              `json:"date,omitempty"`
	Activities []ItineraryActivity `json:"activities"`
}

type Itinerary []DayPlan

// ExtractItinerary reads the "itinerary" key of a trip details payload.
// found is false when the payload is empty or has no itinerary; err is set
// only when the payload is present but cannot be decoded.
func ExtractItinerary(details datatypes.JSON) (it Itinerary, found bool, err error) {
	fields, err := detailFields(details)
	if err != nil {
		return nil, false, err
	}
	raw, ok := fields[itineraryKey]
	if !ok || isNull(raw) {
		return nil, false, nil
	}
	if err := json.Unmarshal(raw, &it); err != nil {
		return nil, false, fmt.Errorf("decode itinerary: %w", err)
	}
	return it, true, nil
}

// WithItinerary returns details with its itinerary key replaced, keeping every other key.
func WithItinerary(details datatypes.JSON, it Itinerary) (datatypes.JSON, error) {
	fields, err := detailFields(details)
	if err != nil {
		return nil, err
	}
	if it == nil {
		it = Itinerary{}
	}
	raw, err := json.Marshal(it)
	if err != nil {
		return nil, err
	}
	fields[itineraryKey] = raw
	out, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}

func detailFields(details datatypes.JSON) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(details)) == 0 || isNull(json.RawMessage(details)) {
		return fields, nil
	}
	if err := json.Unmarshal(details, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrItineraryShape, err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// SeedDays builds one empty day plan per calendar day from start to end inclusive.
func SeedDays(start, end time.Time) Itinerary {
	if end.Before(start) {
		return Itinerary{}
	}
	var it Itinerary
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for n := 1; !day.After(last); n++ {
		it = append(it, DayPlan{
			DayNumber:  n,
			Date:       day.Format(time.DateOnly),
			Activities: []ItineraryActivity{},
		})
		day = day.AddDate(0, 0, 1)
	}
	return it
}

func (it Itinerary) TotalCost() float64 {
	var sum float64
	for _, d := range it {
		for _, a := range d.Activities {
			sum += a.Cost
		}
	}
	return RoundAmount(sum)
}

// DayIndex returns the slice index of the day with the given number, or -1.
func (it Itinerary) DayIndex(dayNumber int) int {
	for i, d := range it {
		if d.DayNumber == dayNumber {
			return i
		}
	}
	return -1
}

// EnsureIDs assigns a UUID to every activity without an id and reports whether it changed anything.
func (it Itinerary) EnsureIDs() bool {
	changed := false
	for i := range it {
		for j := range it[i].Activities {
			if it[i].Activities[j].ID == "" {
				it[i].Activities[j].ID = uuid.NewString()
				changed = true
			}
		}
	}
	return changed
}

// RemoveActivity deletes the activity with id from the day at index di.
func (it Itinerary) RemoveActivity(di int, id string) (ItineraryActivity, bool) {
	acts := it[di].Activities
	for i, a := range acts {
		if a.ID == id {
			it[di].Activities = append(acts[:i:i], acts[i+1:]...)
			return a, true
		}
	}
	return ItineraryActivity{}, false
}

// DisplayName is the label used for the projected activity row.
func (a ItineraryActivity) DisplayName() string {
	switch {
	case a.Location != "":
		return a.Location
	case a.Name != "":
		return a.Name
	default:
		return "Activity"
	}
}

func (a ItineraryActivity) GeoCoordinates() *string {
	if a.Lat == nil || a.Lng == nil {
		return nil
	}
	s := fmt.Sprintf("%g,%g", *a.Lat, *a.Lng)
	return &s
}

// RoundAmount rounds to cents so repeated additions do not drift.
func RoundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}
