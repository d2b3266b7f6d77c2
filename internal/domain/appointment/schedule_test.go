package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func losAngeles(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func TestSchedule_LabelsRegularDay(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, s.Location)

	labels := s.Labels(day)
	require.Len(t, labels, 16)
	assert.Equal(t, "09:00", labels[0])
	assert.Equal(t, "09:30", labels[1])
	assert.Equal(t, "16:30", labels[15])
	assert.NotContains(t, labels, "17:00")
}

func TestSchedule_SpringForwardSkipsMissingHour(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))
	s.OpenHour, s.CloseHour = 0, 4
	day := time.Date(2025, 3, 9, 0, 0, 0, 0, s.Location)

	assert.Equal(t,
		[]string{"00:00", "00:30", "01:00", "01:30", "03:00", "03:30"},
		s.Labels(day),
	)
}

func TestSchedule_FallBackReportsRepeatedHourOnce(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))
	s.OpenHour, s.CloseHour = 0, 4
	day := time.Date(2025, 11, 2, 0, 0, 0, 0, s.Location)

	assert.Equal(t,
		[]string{"00:00", "00:30", "01:00", "01:30", "02:00", "02:30", "03:00", "03:30"},
		s.Labels(day),
	)
}

func TestSchedule_BusinessHoursUnaffectedByDST(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))
	for _, day := range []time.Time{
		time.Date(2025, 3, 9, 0, 0, 0, 0, s.Location),
		time.Date(2025, 11, 2, 0, 0, 0, 0, s.Location),
	} {
		labels := s.Labels(day)
		assert.Len(t, labels, 16, day.Format(DateLayout))
		open, close := s.Window(day)
		assert.Equal(t, 8*time.Hour, close.Sub(open))
	}
}

func TestSchedule_WindowIsLocalWallClock(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))

	open, close := s.Window(time.Date(2025, 6, 10, 0, 0, 0, 0, s.Location))
	assert.Equal(t, time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC), open.UTC())
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), close.UTC())

	open, _ = s.Window(time.Date(2025, 1, 15, 0, 0, 0, 0, s.Location))
	assert.Equal(t, time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC), open.UTC())
}

func TestSchedule_Validate(t *testing.T) {
	good := DefaultSchedule(losAngeles(t))
	require.NoError(t, good.Validate())

	bad := []func(*Schedule){
		func(s *Schedule) { s.Location = nil },
		func(s *Schedule) { s.OpenHour = 17 },
		func(s *Schedule) { s.CloseHour = 25 },
		func(s *Schedule) { s.SlotMinutes = 0 },
		func(s *Schedule) { s.AllowedDurations = nil },
		func(s *Schedule) { s.DefaultDuration = 45 },
	}
	for i, mutate := range bad {
		s := DefaultSchedule(good.Location)
		mutate(&s)
		assert.Error(t, s.Validate(), "case %d", i)
	}
}

func TestSchedule_CloseAtMidnight(t *testing.T) {
	s := DefaultSchedule(losAngeles(t))
	s.OpenHour, s.CloseHour = 22, 24

	labels := s.Labels(time.Date(2025, 6, 10, 0, 0, 0, 0, s.Location))
	assert.Equal(t, []string{"22:00", "22:30", "23:00", "23:30"}, labels)
}
