package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

// ListFilter bounds an admin listing by start time. Zero values are unbounded.
type ListFilter struct {
	From time.Time
	To   time.Time
}

type Repository interface {
	// -------- Booking --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListStartTimes(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]time.Time, error)

	// -------- Admin --------
	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
