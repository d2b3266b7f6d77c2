package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentConflict  = "appointment_conflict"
	ActionAppointmentUpdated   = "appointment_updated"
	ActionAppointmentCancelled = "appointment_cancelled"
)

type Event struct {
	Action        string
	AppointmentID *uint
	Actor         string
	Metadata      any
}

// Logger persists events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		Action:        ev.Action,
		AppointmentID: ev.AppointmentID,
		Actor:         ev.Actor,
		Metadata:      metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}
