package db_models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"voyage/internal/models/db_models"
)

func TestExtractItinerary(t *testing.T) {
	t.Run("empty payload", func(t *testing.T) {
		it, found, err := db_models.ExtractItinerary(nil)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, it)
	})

	t.Run("no itinerary key", func(t *testing.T) {
		_, found, err := db_models.ExtractItinerary(datatypes.JSON(`{"notes":"x"}`))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("itinerary present", func(t *testing.T) {
		payload := `{"itinerary":[{"day_number":1,"activities":[{"id":"a","time":"09:00","location":"Museum","cost":50},{"id":"b","time":"12:00","location":"Lunch","cost":75}]}]}`
		it, found, err := db_models.ExtractItinerary(datatypes.JSON(payload))
		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, it, 1)
		assert.Len(t, it[0].Activities, 2)
		assert.Equal(t, 125.0, it.TotalCost())
	})

	t.Run("itinerary has wrong shape", func(t *testing.T) {
		_, _, err := db_models.ExtractItinerary(datatypes.JSON(`{"itinerary":"soon"}`))
		assert.Error(t, err)
	})

	t.Run("payload is not an object", func(t *testing.T) {
		_, _, err := db_models.ExtractItinerary(datatypes.JSON(`[1,2]`))
		assert.ErrorIs(t, err, db_models.ErrItineraryShape)
	})
}

func TestWithItinerary_keepsOtherKeys(t *testing.T) {
	details := datatypes.JSON(`{"notes":"bring sunscreen","itinerary":[]}`)
	it := db_models.Itinerary{{DayNumber: 1, Activities: []db_models.ItineraryActivity{{ID: "a", Location: "Beach", Cost: 10}}}}

	out, err := db_models.WithItinerary(details, it)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &fields))
	assert.JSONEq(t, `"bring sunscreen"`, string(fields["notes"]))

	got, found, err := db_models.ExtractItinerary(out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Beach", got[0].Activities[0].Location)
}

func TestSeedDays_inclusive(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	it := db_models.SeedDays(start, end)

	require.Len(t, it, 3)
	assert.Equal(t, 1, it[0].DayNumber)
	assert.Equal(t, "2025-06-03", it[2].Date)
	assert.NotNil(t, it[2].Activities)
	assert.Empty(t, db_models.SeedDays(end, start))
}

func TestItinerary_RemoveActivity(t *testing.T) {
	it := db_models.Itinerary{{DayNumber: 2, Activities: []db_models.ItineraryActivity{{ID: "a", Cost: 1}, {ID: "b", Cost: 2}}}}

	removed, ok := it.RemoveActivity(0, "a")
	require.True(t, ok)
	assert.Equal(t, 1.0, removed.Cost)
	assert.Len(t, it[0].Activities, 1)

	_, ok = it.RemoveActivity(0, "missing")
	assert.False(t, ok)
	assert.Equal(t, 0, it.DayIndex(2))
	assert.Equal(t, -1, it.DayIndex(5))
}

func TestItinerary_EnsureIDs(t *testing.T) {
	it := db_models.Itinerary{{DayNumber: 1, Activities: []db_models.ItineraryActivity{{ID: "keep"}, {}}}}

	assert.True(t, it.EnsureIDs())
	assert.Equal(t, "keep", it[0].Activities[0].ID)
	assert.NotEmpty(t, it[0].Activities[1].ID)
	assert.False(t, it.EnsureIDs())
}

func TestItineraryActivity_projectionFields(t *testing.T) {
	lat, lng := 48.8584, 2.2945
	a := db_models.ItineraryActivity{Lat: &lat, Lng: &lng}

	assert.Equal(t, "Activity", a.DisplayName())
	require.NotNil(t, a.GeoCoordinates())
	assert.Equal(t, "48.8584,2.2945", *a.GeoCoordinates())

	a.Name = "Tower"
	assert.Equal(t, "Tower", a.DisplayName())
	a.Location = "Eiffel Tower"
	assert.Equal(t, "Eiffel Tower", a.DisplayName())
}

func TestTrip_DurationDays(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, (&db_models.Trip{StartDate: &start, EndDate: &end}).DurationDays())
	assert.Equal(t, 0, (&db_models.Trip{StartDate: &start}).DurationDays())
}
