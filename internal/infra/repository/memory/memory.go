// Package memory is an in-process appointment store used by tests. It
// enforces the same (date, start_time) uniqueness as the Postgres schema.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

type Repository struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]models.Appointment
	calls  map[string]int

	// Fail, when set, is consulted before every call; a non-nil result is
	// returned instead of touching the rows.
	Fail func(op string) error
}

func New() *Repository {
	return &Repository{
		nextID: 1,
		rows:   make(map[uint]models.Appointment),
		calls:  make(map[string]int),
	}
}

// Calls reports how many times op was invoked.
func (r *Repository) Calls(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *Repository) enter(op string) error {
	r.calls[op]++
	if r.Fail != nil {
		if err := r.Fail(op); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) conflicts(ap models.Appointment) bool {
	for id, row := range r.rows {
		if id != ap.ID && row.Date.Equal(ap.Date) && row.StartTime.Equal(ap.StartTime) {
			return true
		}
	}
	return false
}

func (r *Repository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("CreateAppointment"); err != nil {
		return err
	}

	ap.ID = 0
	if r.conflicts(*ap) {
		return domain.NewError(domain.SlotTaken, "slot already booked")
	}

	now := time.Now().UTC()
	ap.ID = r.nextID
	ap.CreatedAt, ap.UpdatedAt = now, now
	r.nextID++
	r.rows[ap.ID] = *ap
	return nil
}

func (r *Repository) ListStartTimes(_ context.Context, from, to time.Time) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("ListStartTimes"); err != nil {
		return nil, err
	}

	var out []time.Time
	for _, row := range r.rows {
		if !row.StartTime.Before(from) && row.StartTime.Before(to) {
			out = append(out, row.StartTime)
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out, nil
}

func (r *Repository) ListAppointments(_ context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("ListAppointments"); err != nil {
		return nil, err
	}

	out := []models.Appointment{}
	for _, row := range r.rows {
		if !filter.From.IsZero() && row.StartTime.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !row.StartTime.Before(filter.To) {
			continue
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b models.Appointment) int { return b.StartTime.Compare(a.StartTime) })
	return out, nil
}

func (r *Repository) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("GetAppointment"); err != nil {
		return nil, err
	}

	row, ok := r.rows[id]
	if !ok {
		return nil, domain.NewError(domain.NotFound, "appointment not found")
	}
	return &row, nil
}

func (r *Repository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("UpdateAppointment"); err != nil {
		return err
	}

	existing, ok := r.rows[ap.ID]
	if !ok {
		return domain.NewError(domain.NotFound, "appointment not found")
	}
	if r.conflicts(*ap) {
		return domain.NewError(domain.SlotTaken, "slot already booked")
	}

	ap.CreatedAt = existing.CreatedAt
	ap.UpdatedAt = time.Now().UTC()
	r.rows[ap.ID] = *ap
	return nil
}

func (r *Repository) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("DeleteAppointment"); err != nil {
		return err
	}

	if _, ok := r.rows[id]; !ok {
		return domain.NewError(domain.NotFound, "appointment not found")
	}
	delete(r.rows, id)
	return nil
}

var _ domain.Repository = (*Repository)(nil)
