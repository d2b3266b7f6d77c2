package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/metrics"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Date      string
	StartTime string
	Duration  *int

	Name  string
	Email string
	Phone string

	Actor string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates in a fixed order, first failure wins, and then performs a
// single insert. Double booking is resolved by the store's unique index.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start, duration, err := uc.validate(in)
	if err != nil {
		uc.deps.Metrics.Booking(metrics.BookingRejected)
		uc.deps.Logger.Debug("booking rejected",
			"kind", domain.KindOf(err),
			"reason", err.Error(),
		)
		return nil, err
	}

	ap := domain.NewAppointment(uc.deps.Schedule, start, duration, domain.Contact{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	})

	// --------------------------------------------------
	// Insert
	// --------------------------------------------------
	if err := uc.deps.Repo.CreateAppointment(ctx, ap); err != nil {
		err = asStorageFailure(err, "create appointment failed")

		if domain.IsKind(err, domain.SlotTaken) {
			uc.deps.Metrics.Booking(metrics.BookingSlotTaken)
			uc.deps.Logger.Info("booking conflict",
				"date", in.Date,
				"start", in.StartTime,
			)
			uc.deps.dispatch(audit.Event{
				Action:   audit.ActionAppointmentConflict,
				Actor:    in.Actor,
				Metadata: map[string]any{"date": in.Date, "startTime": in.StartTime},
			})
			return nil, err
		}

		uc.deps.Metrics.Booking(metrics.BookingFailed)
		uc.deps.Logger.Error("booking storage failure", "error", err)
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.deps.Metrics.Booking(metrics.BookingCreated)
	uc.deps.dispatch(audit.Event{
		Action:        audit.ActionAppointmentCreated,
		AppointmentID: &ap.ID,
		Actor:         in.Actor,
		Metadata: map[string]any{
			"startTime": ap.StartTime,
			"duration":  duration,
		},
	})

	return ap, nil
}

func (uc *CreateAppointment) validate(in CreateAppointmentInput) (time.Time, int, error) {
	s := uc.deps.Schedule

	// 1. required fields
	if missing := missingFields(
		field{"date", in.Date},
		field{"startTime", in.StartTime},
		field{"name", in.Name},
		field{"email", in.Email},
	); missing != "" {
		return time.Time{}, 0, domain.NewError(domain.MissingField, "missing required fields: "+missing)
	}

	// 2. duration
	duration := s.DefaultDuration
	if in.Duration != nil {
		duration = *in.Duration
	}
	if err := s.CheckDuration(duration); err != nil {
		return time.Time{}, 0, err
	}

	// 3. date
	day, err := s.ParseDay(in.Date)
	if err != nil {
		return time.Time{}, 0, err
	}

	// 4. time
	hour, minute, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return time.Time{}, 0, err
	}
	start := s.At(day, hour, minute)
	if start.Hour() != hour || start.Minute() != minute {
		return time.Time{}, 0, domain.NewError(domain.InvalidTime, "startTime does not exist on this day")
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	// 5. past
	if err := s.CheckNotPast(start, uc.deps.Clock.Now()); err != nil {
		return time.Time{}, 0, err
	}

	// 6. business hours
	if err := s.CheckBusinessHours(start, end); err != nil {
		return time.Time{}, 0, err
	}

	return start, duration, nil
}

type field struct {
	name  string
	value string
}

// missingFields lists the blank fields in argument order.
func missingFields(fields ...field) string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return strings.Join(missing, ", ")
}
