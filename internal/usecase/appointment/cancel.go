package appointment

import (
	"context"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
)

type CancelAppointment struct {
	deps Deps
}

func NewCancelAppointment(deps Deps) *CancelAppointment {
	return &CancelAppointment{deps: deps}
}

// Execute deletes the appointment permanently.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actor string,
) error {

	if err := uc.deps.Repo.DeleteAppointment(ctx, appointmentID); err != nil {
		return asStorageFailure(err, "delete appointment failed")
	}

	uc.deps.dispatch(audit.Event{
		Action:        audit.ActionAppointmentCancelled,
		AppointmentID: &appointmentID,
		Actor:         actor,
	})

	return nil
}
