package models

import (
	"time"
)

// MessageEventType names the customer notification being sent.
type MessageEventType string

const (
	MessageOrderConfirmed      MessageEventType = "order_confirmed"
	MessageAppointmentReminder MessageEventType = "appointment_reminder"
	MessageProductReady        MessageEventType = "product_ready"
	MessageStorageInstructions MessageEventType = "storage_instructions"
	MessageFeedbackRequest     MessageEventType = "feedback_request"
)

// MessageLog records one outbound customer message. Sending here means
// rendering the template and persisting the log row; delivery through an
// SMS/Zalo gateway happens outside this system.
type MessageLog struct {
	ID            string           `gorm:"primaryKey" json:"id"`
	EventType     MessageEventType `gorm:"not null;index" json:"event_type"`
	Phone         string           `gorm:"not null" json:"phone"`
	CustomerName  string           `gorm:"not null" json:"customer_name"`
	Content       string           `gorm:"type:text;not null" json:"content"`
	OrderCode     *string          `gorm:"index" json:"order_code,omitempty"`
	AppointmentID *string          `json:"appointment_id,omitempty"`
	SentAt        time.Time        `gorm:"not null" json:"sent_at"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TableName specifies the table name for the MessageLog model
func (MessageLog) TableName() string {
	return "message_logs"
}
