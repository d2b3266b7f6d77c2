package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action        string `gorm:"size:50;not null" json:"action"`
	AppointmentID *uint  `gorm:"index" json:"appointmentId"`
	Actor         string `gorm:"size:254" json:"actor"`
	Metadata      string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
}
