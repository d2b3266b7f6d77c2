package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
	"github.com/BruksfildServices01/showroom-scheduler/internal/timezone"
)

type UpdateAppointmentInput struct {
	ID uint

	Name  string
	Email string
	Phone string

	// StartTime is RFC3339 or a business-timezone wall clock YYYY-MM-DDTHH:mm.
	StartTime string
	Duration  *int

	Actor string
}

type UpdateAppointment struct {
	deps Deps
}

func NewUpdateAppointment(deps Deps) *UpdateAppointment {
	return &UpdateAppointment{deps: deps}
}

// Execute fully overwrites the mutable fields of an appointment. Admin edits
// may target past days but must stay inside business hours.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	s := uc.deps.Schedule

	if missing := missingFields(
		field{"name", in.Name},
		field{"email", in.Email},
		field{"startTime", in.StartTime},
	); missing != "" {
		return nil, domain.NewError(domain.MissingField, "missing required fields: "+missing)
	}

	duration := s.DefaultDuration
	if in.Duration != nil {
		duration = *in.Duration
	}
	if err := s.CheckDuration(duration); err != nil {
		return nil, err
	}

	start, err := timezone.ParseLocalDateTime(strings.TrimSpace(in.StartTime), s.Location)
	if errors.Is(err, timezone.ErrNonexistentLocalTime) {
		return nil, domain.WrapError(domain.InvalidTime, "startTime does not exist on this day", err)
	}
	if err != nil {
		return nil, domain.WrapError(domain.InvalidDate, "startTime must be RFC3339 or YYYY-MM-DDTHH:mm", err)
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	if err := s.CheckBusinessHours(start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Load + overwrite
	// --------------------------------------------------
	ap, err := uc.deps.Repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, asStorageFailure(err, "load appointment failed")
	}
	previous := ap.StartTime

	domain.Reschedule(ap, s, start, duration, domain.Contact{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	})

	if err := uc.deps.Repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, asStorageFailure(err, "update appointment failed")
	}

	uc.deps.dispatch(audit.Event{
		Action:        audit.ActionAppointmentUpdated,
		AppointmentID: &ap.ID,
		Actor:         in.Actor,
		Metadata: map[string]any{
			"from": previous,
			"to":   ap.StartTime,
		},
	})

	return ap, nil
}
