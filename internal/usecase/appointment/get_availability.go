package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
)

type GetAvailabilityInput struct {
	Date string
}

type GetAvailability struct {
	deps   Deps
	strict bool
}

// NewGetAvailability builds the read path. With strictDates false a missing
// or malformed date falls back to today in the business timezone.
func NewGetAvailability(deps Deps, strictDates bool) *GetAvailability {
	return &GetAvailability{deps: deps, strict: strictDates}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (domain.Availability, error) {

	s := uc.deps.Schedule
	now := uc.deps.Clock.Now()

	// --------------------------------------------------
	// Day resolution
	// --------------------------------------------------
	day, err := uc.resolveDay(in.Date, now)
	if err != nil {
		return domain.Availability{}, err
	}

	// --------------------------------------------------
	// Past days are never bookable
	// --------------------------------------------------
	if s.DateLabel(day) < now.UTC().Format(domain.DateLayout) {
		return s.EmptyAvailability(day), nil
	}

	// --------------------------------------------------
	// Booked starts inside [open, close)
	// --------------------------------------------------
	open, close := s.Window(day)

	starts, err := uc.deps.Repo.ListStartTimes(ctx, open, close)
	if err != nil {
		uc.deps.Logger.Warn("availability degraded, serving without bookings",
			"date", s.DateLabel(day),
			"error", err,
		)
		uc.deps.Metrics.Degraded()
		starts = nil
	}

	return s.Availability(day, starts), nil
}

func (uc *GetAvailability) resolveDay(date string, now time.Time) (time.Time, error) {
	s := uc.deps.Schedule
	date = strings.TrimSpace(date)

	if date == "" {
		if uc.strict {
			return time.Time{}, domain.NewError(domain.MissingField, "date is required")
		}
		return s.DayStart(now), nil
	}

	day, err := s.ParseDay(date)
	if err != nil {
		if uc.strict {
			return time.Time{}, err
		}
		uc.deps.Logger.Debug("unparsable date, falling back to today", "date", date)
		return s.DayStart(now), nil
	}

	return day, nil
}
