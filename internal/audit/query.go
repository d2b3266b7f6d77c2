package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Query selects audit rows. Zero values leave a filter unset.
type Query struct {
	Action        string
	AppointmentID *uint
	From          time.Time
	To            time.Time // exclusive

	Page  int
	Limit int
}

// Normalize clamps paging to sane values.
func (q Query) Normalize() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > MaxPageLimit {
		q.Limit = DefaultPageLimit
	}
	return q
}

// List returns one page of audit rows, newest first, and the total match count.
func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q = q.Normalize()

	tx := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.AppointmentID != nil {
		tx = tx.Where("appointment_id = ?", *q.AppointmentID)
	}
	if !q.From.IsZero() {
		tx = tx.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		tx = tx.Where("created_at < ?", q.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := []models.AuditLog{}
	if err := tx.
		Order("created_at DESC").
		Order("id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
