package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/dto"
	"github.com/BruksfildServices01/showroom-scheduler/internal/timezone"
)

// ListAppointmentsInput narrows the listing to one day (YYYY-MM-DD) or one
// month (YYYY-MM). Both empty lists everything.
type ListAppointmentsInput struct {
	Date  string
	Month string
}

type ListAppointments struct {
	deps Deps
}

func NewListAppointments(deps Deps) *ListAppointments {
	return &ListAppointments{deps: deps}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.Appointment, error) {

	filter, err := uc.filter(in)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.deps.Repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, asStorageFailure(err, "list appointments failed")
	}

	return dto.FromModels(appointments), nil
}

func (uc *ListAppointments) filter(in ListAppointmentsInput) (domain.ListFilter, error) {
	loc := uc.deps.Schedule.Location
	date := strings.TrimSpace(in.Date)
	month := strings.TrimSpace(in.Month)

	switch {
	case date != "" && month != "":
		return domain.ListFilter{}, domain.NewError(domain.InvalidDate, "use either date or month, not both")

	case date != "":
		day, err := uc.deps.Schedule.ParseDay(date)
		if err != nil {
			return domain.ListFilter{}, err
		}
		from, to := timezone.DayRange(day, loc)
		return domain.ListFilter{From: from, To: to}, nil

	case month != "":
		from, to, err := timezone.ParseMonth(month, loc)
		if err != nil {
			return domain.ListFilter{}, domain.WrapError(domain.InvalidDate, "month must be YYYY-MM", err)
		}
		return domain.ListFilter{From: from, To: to}, nil
	}

	return domain.ListFilter{}, nil
}
