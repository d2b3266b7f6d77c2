package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailability_NoBookings(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, s.Location)

	got := s.Availability(day, nil)

	assert.Equal(t, "2025-06-10", got.Date)
	assert.Equal(t, "America/Los_Angeles", got.Timezone)
	assert.Equal(t, "09:00", got.Open)
	assert.Equal(t, "17:00", got.Close)
	assert.Equal(t, 30, got.SlotMinutes)
	assert.Len(t, got.Slots, 16)
	assert.Empty(t, got.Booked)
	assert.NotNil(t, got.Booked)
}

func TestAvailability_SlotsAndBookedPartitionTheGrid(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, s.Location)

	starts := []time.Time{
		s.At(day, 14, 0).UTC(),
		s.At(day, 9, 0).UTC(),
		s.At(day, 9, 0).UTC(),
		s.At(day, 11, 15).UTC(),
	}
	got := s.Availability(day, starts)

	assert.Equal(t, []string{"09:00", "14:00"}, got.Booked)
	assert.Len(t, got.Slots, 14)

	all := s.Labels(day)
	for _, b := range got.Booked {
		assert.NotContains(t, got.Slots, b)
		assert.Contains(t, all, b)
	}
	for _, sl := range got.Slots {
		assert.Contains(t, all, sl)
	}
	assert.Equal(t, len(all), len(got.Slots)+len(got.Booked))
}

func TestEmptyAvailability(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))
	got := s.EmptyAvailability(time.Date(2020, 1, 1, 0, 0, 0, 0, s.Location))

	assert.Equal(t, "2020-01-01", got.Date)
	assert.Empty(t, got.Slots)
	assert.NotNil(t, got.Slots)
	assert.Empty(t, got.Booked)
}
