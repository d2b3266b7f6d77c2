package timezone

import (
	"errors"
	"fmt"
	"time"
)

const DefaultTimezone = "America/Los_Angeles"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone when it is unknown.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}

// ParseMonth parses YYYY-MM and returns [first day, first day of next month).
func ParseMonth(s string, loc *time.Location) (time.Time, time.Time, error) {
	first, err := time.ParseInLocation("2006-01", s, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("month must be YYYY-MM: %w", err)
	}
	return first, first.AddDate(0, 1, 0), nil
}

// DayRange returns [midnight, next midnight) of the day containing t. The
// span is 23 or 25 hours on DST transition days.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// ErrNonexistentLocalTime reports a wall-clock time skipped by a DST transition.
var ErrNonexistentLocalTime = errors.New("local time does not exist in this timezone")

// ParseLocalDateTime accepts RFC3339 or a wall-clock YYYY-MM-DDTHH:mm in loc.
// A wall-clock time inside a DST gap is rejected with ErrNonexistentLocalTime.
func ParseLocalDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		// UTC has no gaps, so it holds the wall clock exactly as written
		wall, _ := time.Parse(layout, s)
		if !sameWallClock(t, wall) {
			return time.Time{}, fmt.Errorf("%q: %w", s, ErrNonexistentLocalTime)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date-time %q", s)
}

func sameWallClock(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}
