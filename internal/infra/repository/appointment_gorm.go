package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

const pgUniqueViolation = "23505"

type AppointmentGormRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewAppointmentGormRepository(db *gorm.DB, timeout time.Duration) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, timeout: timeout}
}

func (r *AppointmentGormRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return mapError(r.db.WithContext(ctx).Create(ap).Error, "create appointment")
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListStartTimes(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var starts []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Pluck("start_time", &starts).Error; err != nil {
		return nil, mapError(err, "list start times")
	}

	return starts, nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if !filter.From.IsZero() {
		q = q.Where("start_time >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("start_time < ?", filter.To)
	}

	apps := []models.Appointment{}
	if err := q.Order("start_time DESC").Find(&apps).Error; err != nil {
		return nil, mapError(err, "list appointments")
	}

	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, mapError(err, "get appointment")
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"date":       ap.Date,
			"start_time": ap.StartTime,
			"end_time":   ap.EndTime,
			"name":       ap.Name,
			"email":      ap.Email,
			"phone":      ap.Phone,
		})
	if res.Error != nil {
		return mapError(res.Error, "update appointment")
	}
	if res.RowsAffected == 0 {
		return domain.NewError(domain.NotFound, "appointment not found")
	}

	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return mapError(res.Error, "delete appointment")
	}
	if res.RowsAffected == 0 {
		return domain.NewError(domain.NotFound, "appointment not found")
	}

	return nil
}

// --------------------------------------------------
// Error mapping
// --------------------------------------------------

func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		return domain.WrapError(domain.SlotTaken, "slot already booked", err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.WrapError(domain.NotFound, "appointment not found", err)
	default:
		return domain.WrapError(domain.StorageFailure, op+" failed", err)
	}
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
