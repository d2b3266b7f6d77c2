package appointment

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/BruksfildServices01/showroom-scheduler/internal/timezone"
)

const (
	DateLayout  = "2006-01-02"
	LabelLayout = "15:04"
)

// Schedule is the fixed business-hours configuration shared by the
// availability and booking paths. It is a value type and never mutated
// after construction.
type Schedule struct {
	Location         *time.Location
	OpenHour         int
	CloseHour        int
	SlotMinutes      int
	AllowedDurations []int
	DefaultDuration  int
}

func DefaultSchedule(loc *time.Location) Schedule {
	return Schedule{
		Location:         loc,
		OpenHour:         9,
		CloseHour:        17,
		SlotMinutes:      30,
		AllowedDurations: []int{30, 60},
		DefaultDuration:  30,
	}
}

func (s Schedule) Validate() error {
	if s.Location == nil {
		return errors.New("schedule: location is required")
	}
	if s.OpenHour < 0 || s.CloseHour > 24 || s.OpenHour >= s.CloseHour {
		return fmt.Errorf("schedule: invalid hours %d-%d", s.OpenHour, s.CloseHour)
	}
	if s.SlotMinutes <= 0 {
		return fmt.Errorf("schedule: invalid slot minutes %d", s.SlotMinutes)
	}
	if len(s.AllowedDurations) == 0 {
		return errors.New("schedule: at least one duration is required")
	}
	if !s.AllowsDuration(s.DefaultDuration) {
		return fmt.Errorf("schedule: default duration %d is not allowed", s.DefaultDuration)
	}
	return nil
}

func (s Schedule) TimezoneName() string {
	return s.Location.String()
}

func (s Schedule) SlotStep() time.Duration {
	return time.Duration(s.SlotMinutes) * time.Minute
}

func (s Schedule) AllowsDuration(minutes int) bool {
	return slices.Contains(s.AllowedDurations, minutes)
}

// DayStart returns local midnight of the business day containing t.
func (s Schedule) DayStart(t time.Time) time.Time {
	return timezone.StartOfDay(t, s.Location)
}

// Window returns the open and close instants of the business day containing day.
func (s Schedule) Window(day time.Time) (open, close time.Time) {
	y, m, d := day.In(s.Location).Date()
	open = time.Date(y, m, d, s.OpenHour, 0, 0, 0, s.Location)
	close = time.Date(y, m, d, s.CloseHour, 0, 0, 0, s.Location)
	return open, close
}

func (s Schedule) Label(t time.Time) string {
	return t.In(s.Location).Format(LabelLayout)
}

func (s Schedule) DateLabel(t time.Time) string {
	return t.In(s.Location).Format(DateLayout)
}

// Slots enumerates slot start instants in [open, close) by stepping in
// absolute time, so a DST gap shortens the day and a repeated hour is
// reported once per label.
func (s Schedule) Slots(day time.Time) []time.Time {
	open, close := s.Window(day)
	step := s.SlotStep()

	seen := make(map[string]struct{})
	var out []time.Time
	for cur := open; cur.Before(close); cur = cur.Add(step) {
		label := s.Label(cur)
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, cur)
	}
	return out
}

func (s Schedule) Labels(day time.Time) []string {
	slots := s.Slots(day)
	out := make([]string, 0, len(slots))
	for _, t := range slots {
		out = append(out, s.Label(t))
	}
	return out
}
