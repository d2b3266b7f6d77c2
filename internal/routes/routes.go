package routes

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
	"github.com/BruksfildServices01/showroom-scheduler/internal/auth"
	"github.com/BruksfildServices01/showroom-scheduler/internal/clock"
	"github.com/BruksfildServices01/showroom-scheduler/internal/config"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/handlers"
	"github.com/BruksfildServices01/showroom-scheduler/internal/metrics"
	"github.com/BruksfildServices01/showroom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/showroom-scheduler/internal/usecase/appointment"
)

type AuditLogs interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

// Deps are the process-wide singletons built in main.
type Deps struct {
	Config   config.Config
	Schedule domain.Schedule

	Repo      domain.Repository
	Audit     ucAppointment.Auditor
	AuditLogs AuditLogs
	Pinger    handlers.Pinger
	Verifier  auth.Verifier
	Admin     *auth.AdminCredentials

	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	Clock  clock.Clock
	Logger *slog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Logger),
		gin.Recovery(),
		middleware.NewCORSMiddleware(cfg.CORS, d.Logger),
	)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	// ======================================================
	// USE CASES
	// ======================================================
	ucDeps := ucAppointment.Deps{
		Repo:     d.Repo,
		Schedule: d.Schedule,
		Clock:    d.Clock,
		Audit:    d.Audit,
		Metrics:  d.Metrics,
		Logger:   d.Logger,
	}

	getAvailabilityUC := ucAppointment.NewGetAvailability(ucDeps, cfg.Schedule.StrictDates)
	createAppointmentUC := ucAppointment.NewCreateAppointment(ucDeps)
	listAppointmentsUC := ucAppointment.NewListAppointments(ucDeps)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(ucDeps)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(ucDeps)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Pinger, cfg.DB.StorageTimeout, d.Logger)
	publicHandler := handlers.NewPublicHandler(getAvailabilityUC, createAppointmentUC)
	meHandler := handlers.NewMeHandler()
	adminHandler := handlers.NewAdminHandler(listAppointmentsUC, updateAppointmentUC, cancelAppointmentUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Schedule)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", healthHandler.Check)

	if cfg.Metrics.Enabled && d.Registry != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler(d.Registry)))
	}

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/appointments", publicHandler.Availability)
		api.POST("/appointments",
			middleware.Identify(d.Verifier, cfg.AuthRequired(), d.Logger),
			publicHandler.Create,
		)

		api.GET("/me",
			middleware.Identify(d.Verifier, true, d.Logger),
			meHandler.GetMe,
		)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(d.Admin))
		{
			admin.GET("/appointments", adminHandler.List)

			admin.PUT("/appointments", adminHandler.Update)
			admin.PUT("/appointments/:id", adminHandler.Update)

			admin.DELETE("/appointments", adminHandler.Cancel)
			admin.DELETE("/appointments/:id", adminHandler.Cancel)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
