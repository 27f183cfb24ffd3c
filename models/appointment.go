package models

import (
	"time"
)

// AppointmentStatus is the lifecycle status of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// ValidAppointmentStatus reports whether s is a declared appointment status.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted,
		AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// DefaultAppointmentDuration is used when no duration is given, in minutes.
const DefaultAppointmentDuration = 60

// Appointment is a scheduled customer visit, optionally tied to an order
// and an assigned staff member.
type Appointment struct {
	ID            string            `gorm:"primaryKey" json:"id"`
	CustomerName  string            `gorm:"not null" json:"customer_name"`
	CustomerPhone string            `gorm:"not null" json:"customer_phone"`
	CustomerCode  *string           `json:"customer_code,omitempty"`
	OrderCode     *string           `gorm:"index" json:"order_code,omitempty"`
	ScheduledDate time.Time         `gorm:"not null;index" json:"scheduled_date"`
	Duration      int               `gorm:"not null;default:60" json:"duration"` // minutes
	Purpose       string            `gorm:"not null" json:"purpose"`
	StaffID       *uint             `gorm:"index" json:"staff_id,omitempty"`
	StaffName     *string           `json:"staff_name,omitempty"`
	Status        AppointmentStatus `gorm:"not null;default:'scheduled'" json:"status"`
	Notes         string            `json:"notes"`
	ReminderSent  bool              `gorm:"not null;default:false" json:"reminder_sent"`
	CreatedByID   *uint             `json:"created_by_id,omitempty"`
	CreatedByName string            `json:"created_by_name"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// End returns the exclusive end instant of the appointment slot.
func (a *Appointment) End() time.Time {
	d := a.Duration
	if d <= 0 {
		d = DefaultAppointmentDuration
	}
	return a.ScheduledDate.Add(time.Duration(d) * time.Minute)
}
