package appointment

import (
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

// ===============================
// Contact
// ===============================

type Contact struct {
	Name  string
	Email string
	Phone string
}

func (c Contact) Normalize() Contact {
	return Contact{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// NormalizePhone returns nil for a blank phone.
func NormalizePhone(phone string) *string {
	p := strings.TrimSpace(phone)
	if p == "" {
		return nil
	}
	return &p
}

// ===============================
// Parsing rules
// ===============================

// ParseDay resolves a YYYY-MM-DD string to local midnight in the business timezone.
func (s Schedule) ParseDay(date string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), s.Location)
	if err != nil {
		return time.Time{}, WrapError(InvalidDate, "date must be YYYY-MM-DD", err)
	}
	return day, nil
}

// ParseClock parses an HH:mm wall-clock label.
func ParseClock(hhmm string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return 0, 0, NewError(InvalidTime, "startTime must be HH:mm")
	}

	hour, herr := strconv.Atoi(parts[0])
	minute, merr := strconv.Atoi(parts[1])
	if herr != nil || merr != nil {
		return 0, 0, NewError(InvalidTime, "startTime must be HH:mm")
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, NewError(InvalidTime, "startTime is out of range")
	}
	return hour, minute, nil
}

// At places a wall-clock time on the business day containing day.
func (s Schedule) At(day time.Time, hour, minute int) time.Time {
	y, m, d := day.In(s.Location).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, s.Location)
}

// ===============================
// Business rules
// ===============================

func (s Schedule) CheckDuration(minutes int) error {
	if !s.AllowsDuration(minutes) {
		return NewError(InvalidDuration, "duration must be one of the allowed lengths")
	}
	return nil
}

// CheckBusinessHours requires [start, end) to sit inside the open/close window
// of start's business day.
func (s Schedule) CheckBusinessHours(start, end time.Time) error {
	open, close := s.Window(start)
	if start.Before(open) || end.After(close) {
		return NewError(OutsideBusinessHours, "appointment must be within business hours")
	}
	return nil
}

// CheckNotPast rejects a start before the beginning of the current business day.
func (s Schedule) CheckNotPast(start, now time.Time) error {
	if start.Before(s.DayStart(now)) {
		return NewError(PastDate, "date is in the past")
	}
	return nil
}

// ===============================
// Entity construction
// ===============================

// NewAppointment builds a row whose date is always derived from start.
func NewAppointment(s Schedule, start time.Time, durationMinutes int, c Contact) *models.Appointment {
	ap := &models.Appointment{}
	Reschedule(ap, s, start, durationMinutes, c)
	return ap
}

// Reschedule overwrites the mutable fields of ap and recomputes end and date.
func Reschedule(ap *models.Appointment, s Schedule, start time.Time, durationMinutes int, c Contact) {
	c = c.Normalize()
	ap.Date = s.DayStart(start).UTC()
	ap.StartTime = start.UTC()
	ap.EndTime = start.Add(time.Duration(durationMinutes) * time.Minute).UTC()
	ap.Name = c.Name
	ap.Email = c.Email
	ap.Phone = NormalizePhone(c.Phone)
}
