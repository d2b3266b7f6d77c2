package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/dto"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/showroom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/showroom-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// USE CASE PORTS
////////////////////////////////////////////////////////

type availabilityGetter interface {
	Execute(ctx context.Context, in ucAppointment.GetAvailabilityInput) (domain.Availability, error)
}

type appointmentCreator interface {
	Execute(ctx context.Context, in ucAppointment.CreateAppointmentInput) (*models.Appointment, error)
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability availabilityGetter
	create       appointmentCreator
}

func NewPublicHandler(
	availability availabilityGetter,
	create appointmentCreator,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// GET /api/appointments?date=YYYY-MM-DD
func (h *PublicHandler) Availability(c *gin.Context) {
	a, err := h.availability.Execute(c.Request.Context(), ucAppointment.GetAvailabilityInput{
		Date: c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.FromAvailability(a))
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

// POST /api/appointments
func (h *PublicHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		Duration:  req.Duration,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Actor:     middleware.Actor(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.AppointmentEnvelope{
		OK:          true,
		Appointment: dto.FromModel(ap),
	})
}
