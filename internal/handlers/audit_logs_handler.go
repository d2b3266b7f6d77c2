package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/showroom-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
	"github.com/BruksfildServices01/showroom-scheduler/internal/timezone"
)

type auditLister interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs     auditLister
	schedule domain.Schedule
}

func NewAuditLogsHandler(logs auditLister, schedule domain.Schedule) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, schedule: schedule}
}

type AuditLogsResponse struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// GET /api/admin/audit-logs
func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{
		Action: strings.TrimSpace(c.Query("action")),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageLimit)))

	if raw := c.Query("appointmentId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", "appointmentId must be a positive integer")
			return
		}
		v := uint(id)
		q.AppointmentID = &v
	}

	// --------------------------------------------------
	// Day range in the business timezone
	// --------------------------------------------------
	loc := h.schedule.Location
	if raw := c.Query("from"); raw != "" {
		day, err := timezone.ParseDate(raw, loc)
		if err != nil {
			httperr.FromError(c, domain.WrapError(domain.InvalidDate, "from must be YYYY-MM-DD", err))
			return
		}
		q.From = day
	}
	if raw := c.Query("to"); raw != "" {
		day, err := timezone.ParseDate(raw, loc)
		if err != nil {
			httperr.FromError(c, domain.WrapError(domain.InvalidDate, "to must be YYYY-MM-DD", err))
			return
		}
		q.To = day.AddDate(0, 0, 1)
	}

	q = q.Normalize()

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.FromError(c, domain.WrapError(domain.StorageFailure, "list audit logs failed", err))
		return
	}

	httpresp.OK(c, AuditLogsResponse{
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Logs:  logs,
	})
}
