package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

const keyPrefix = "showroom:booked"

// Repository caches booked start times per business-day window and
// invalidates the touched days on every write. A read only populates the
// cache if no write bumped the day's generation while it was reading. Cache
// failures fall through to the wrapped repository.
type Repository struct {
	next     domain.Repository
	store    Store
	schedule domain.Schedule
	ttl      time.Duration
	logger   *slog.Logger
}

func NewRepository(
	next domain.Repository,
	store Store,
	schedule domain.Schedule,
	ttl time.Duration,
	logger *slog.Logger,
) *Repository {
	return &Repository{
		next:     next,
		store:    store,
		schedule: schedule,
		ttl:      ttl,
		logger:   logger,
	}
}

func Key(from, to time.Time) string {
	return fmt.Sprintf("%s:%d:%d", keyPrefix, from.Unix(), to.Unix())
}

func (r *Repository) dayKey(t time.Time) string {
	open, close := r.schedule.Window(t)
	return Key(open, close)
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *Repository) ListStartTimes(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	key := Key(from, to)

	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.logger.Warn("booked cache read failed", "key", key, "error", err)
	}
	if ok {
		var starts []time.Time
		if err := json.Unmarshal(raw, &starts); err == nil {
			return starts, nil
		}
		r.logger.Warn("booked cache entry corrupt", "key", key)
	}

	// the generation must be observed before the store read
	gen, genErr := r.store.Generation(ctx, key)
	if genErr != nil {
		r.logger.Warn("booked cache generation read failed", "key", key, "error", genErr)
	}

	starts, err := r.next.ListStartTimes(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		r.writeBack(ctx, key, gen, starts)
	}

	return starts, nil
}

// writeBack stores starts unless a write touched the day since gen was read.
func (r *Repository) writeBack(ctx context.Context, key string, gen int64, starts []time.Time) {
	b, err := json.Marshal(starts)
	if err != nil {
		return
	}
	stored, err := r.store.SetIfGeneration(ctx, key, gen, b, r.ttl)
	if err != nil {
		r.logger.Warn("booked cache write failed", "key", key, "error", err)
		return
	}
	if !stored {
		r.logger.Debug("booked cache write skipped, day changed during read", "key", key)
	}
}

func (r *Repository) ListAppointments(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	return r.next.ListAppointments(ctx, filter)
}

func (r *Repository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return r.next.GetAppointment(ctx, id)
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *Repository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := r.next.CreateAppointment(ctx, ap); err != nil {
		return err
	}
	r.invalidate(ctx, r.dayKey(ap.StartTime))
	return nil
}

func (r *Repository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	keys := []string{r.dayKey(ap.StartTime)}
	if old, err := r.next.GetAppointment(ctx, ap.ID); err == nil {
		if k := r.dayKey(old.StartTime); k != keys[0] {
			keys = append(keys, k)
		}
	}

	if err := r.next.UpdateAppointment(ctx, ap); err != nil {
		return err
	}
	r.invalidate(ctx, keys...)
	return nil
}

func (r *Repository) DeleteAppointment(ctx context.Context, id uint) error {
	old, getErr := r.next.GetAppointment(ctx, id)

	if err := r.next.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	if getErr == nil {
		r.invalidate(ctx, r.dayKey(old.StartTime))
	}
	return nil
}

func (r *Repository) invalidate(ctx context.Context, keys ...string) {
	if err := r.store.Invalidate(ctx, keys...); err != nil {
		r.logger.Warn("booked cache invalidation failed", "keys", keys, "error", err)
	}
}

var _ domain.Repository = (*Repository)(nil)
