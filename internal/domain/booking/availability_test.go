package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildAvailabilityIndex(t *testing.T) {
	snapshot := []*Booking{
		newTestBooking(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		newTestBooking(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
	}
	idx := BuildAvailabilityIndex(snapshot)

	assert.True(t, idx.IsBooked(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, idx.IsBooked(time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)), "time of day must not matter")
	assert.False(t, idx.IsBooked(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
}

func TestBuildAvailabilityIndexFromRaw_SkipsBadDates(t *testing.T) {
	idx := BuildAvailabilityIndexFromRaw([]string{
		"2025-06-01",
		"",
		"not-a-date",
		"2025-07-20T00:00:00Z",
		"2025-06-01", // duplicate collapses
	})

	assert.Equal(t, []string{"2025-06-01", "2025-07-20"}, idx.Dates())
}

func TestAvailabilityIndex_DatesSorted(t *testing.T) {
	idx := BuildAvailabilityIndexFromRaw([]string{"2025-12-01", "2025-01-15", "2025-06-10"})
	assert.Equal(t, []string{"2025-01-15", "2025-06-10", "2025-12-01"}, idx.Dates())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	assert.NoError(t, err)
	assert.Equal(t, "2025-06-15", DateKey(d))

	d, err = ParseDate("2025-06-15T08:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, "2025-06-15", DateKey(d))

	_, err = ParseDate("15/06/2025")
	assert.Error(t, err)
}
