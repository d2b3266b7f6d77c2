package dto

import (
	"encoding/json"
	"time"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

// ======================================================
// Requests
// ======================================================

type CreateAppointmentRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Duration  *int   `json:"duration"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type UpdateAppointmentRequest struct {
	// ID, a number or numeric string, is read only when the path and query
	// carry none.
	ID json.Number `json:"id"`

	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StartTime string `json:"startTime"`
	Duration  *int   `json:"duration"`
}

// ======================================================
// Responses
// ======================================================

type Appointment struct {
	ID        uint      `json:"id"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromModel(ap *models.Appointment) Appointment {
	return Appointment{
		ID:        ap.ID,
		Date:      ap.Date.UTC(),
		StartTime: ap.StartTime.UTC(),
		EndTime:   ap.EndTime.UTC(),
		Name:      ap.Name,
		Email:     ap.Email,
		Phone:     ap.Phone,
		CreatedAt: ap.CreatedAt.UTC(),
		UpdatedAt: ap.UpdatedAt.UTC(),
	}
}

func FromModels(apps []models.Appointment) []Appointment {
	out := make([]Appointment, 0, len(apps))
	for i := range apps {
		out = append(out, FromModel(&apps[i]))
	}
	return out
}

type AppointmentEnvelope struct {
	OK          bool        `json:"ok"`
	Appointment Appointment `json:"appointment"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type AvailabilityResponse struct {
	Date        string   `json:"date"`
	Timezone    string   `json:"timezone"`
	Open        string   `json:"open"`
	Close       string   `json:"close"`
	SlotMinutes int      `json:"slotMinutes"`
	Slots       []string `json:"slots"`
	Booked      []string `json:"booked"`
}

func FromAvailability(a domain.Availability) AvailabilityResponse {
	slots, booked := a.Slots, a.Booked
	if slots == nil {
		slots = []string{}
	}
	if booked == nil {
		booked = []string{}
	}
	return AvailabilityResponse{
		Date:        a.Date,
		Timezone:    a.Timezone,
		Open:        a.Open,
		Close:       a.Close,
		SlotMinutes: a.SlotMinutes,
		Slots:       slots,
		Booked:      booked,
	}
}
