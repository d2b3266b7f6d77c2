package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date      time.Time `gorm:"not null;uniqueIndex:idx_appointments_date_start,priority:1" json:"date"`
	StartTime time.Time `gorm:"not null;uniqueIndex:idx_appointments_date_start,priority:2;index:idx_appointments_start_time" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`

	Name  string  `gorm:"size:100;not null" json:"name"`
	Email string  `gorm:"size:254;not null" json:"email"`
	Phone *string `gorm:"size:30" json:"phone"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
