package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/dto"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/showroom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/showroom-scheduler/internal/usecase/appointment"
)

// ======================================================
// USE CASE PORTS
// ======================================================

type appointmentLister interface {
	Execute(ctx context.Context, in ucAppointment.ListAppointmentsInput) ([]dto.Appointment, error)
}

type appointmentUpdater interface {
	Execute(ctx context.Context, in ucAppointment.UpdateAppointmentInput) (*models.Appointment, error)
}

type appointmentCanceller interface {
	Execute(ctx context.Context, id uint, actor string) error
}

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	list   appointmentLister
	update appointmentUpdater
	cancel appointmentCanceller
}

func NewAdminHandler(
	list appointmentLister,
	update appointmentUpdater,
	cancel appointmentCanceller,
) *AdminHandler {
	return &AdminHandler{
		list:   list,
		update: update,
		cancel: cancel,
	}
}

// GET /api/admin/appointments[?date=YYYY-MM-DD|?month=YYYY-MM]
func (h *AdminHandler) List(c *gin.Context) {
	apps, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		Date:  c.Query("date"),
		Month: c.Query("month"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, apps)
}

// PUT /api/admin/appointments/:id
func (h *AdminHandler) Update(c *gin.Context) {
	var req dto.UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	id, ok := appointmentID(c, req.ID.String())
	if !ok {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		StartTime: req.StartTime,
		Duration:  req.Duration,
		Actor:     middleware.Actor(c),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.AppointmentEnvelope{
		OK:          true,
		Appointment: dto.FromModel(ap),
	})
}

// DELETE /api/admin/appointments/:id
func (h *AdminHandler) Cancel(c *gin.Context) {
	id, ok := appointmentID(c, "")
	if !ok {
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.OKResponse{OK: true})
}

// appointmentID reads the id from the path, then ?id=, then the body id.
func appointmentID(c *gin.Context, bodyID string) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("id"))
	}
	if raw == "" {
		raw = strings.TrimSpace(bodyID)
	}
	if raw == "" {
		httperr.FromError(c, domain.NewError(domain.MissingField, "missing required fields: id"))
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
