package appointment

import (
	"log/slog"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
	"github.com/BruksfildServices01/showroom-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/metrics"
)

type Auditor interface {
	Dispatch(ev audit.Event)
}

// Deps are the collaborators shared by every appointment use case.
type Deps struct {
	Repo     domain.Repository
	Schedule domain.Schedule
	Clock    clock.Clock
	Audit    Auditor
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

func (d Deps) dispatch(ev audit.Event) {
	if d.Audit != nil {
		d.Audit.Dispatch(ev)
	}
}

// asStorageFailure keeps domain errors intact and classifies anything else
// coming out of the repository as a storage failure.
func asStorageFailure(err error, msg string) error {
	if domain.KindOf(err) != "" {
		return err
	}
	return domain.WrapError(domain.StorageFailure, msg, err)
}
