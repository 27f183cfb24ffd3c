package models

import (
	"time"
)

// RefundStatus is the review status of a refund request.
type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

// RefundRequest is created when an order takes the refund side exit and
// reviewed by an admin afterwards.
type RefundRequest struct {
	ID             string       `gorm:"primaryKey" json:"id"`
	OrderCode      string       `gorm:"not null;index" json:"order_code"`
	CustomerName   string       `gorm:"not null" json:"customer_name"`
	CustomerPhone  string       `gorm:"not null" json:"customer_phone"`
	Reason         string       `gorm:"type:text;not null" json:"reason"`
	Amount         float64      `gorm:"not null" json:"amount"`
	Status         RefundStatus `gorm:"not null;default:'pending'" json:"status"`
	ReviewedByID   *uint        `json:"reviewed_by_id,omitempty"`
	ReviewedByName *string      `json:"reviewed_by_name,omitempty"`
	ReviewedAt     *time.Time   `json:"reviewed_at,omitempty"`
	ReviewNotes    string       `json:"review_notes"`
	RequestedByID  *uint        `json:"requested_by_id,omitempty"`
	RequestedBy    string       `json:"requested_by"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the RefundRequest model
func (RefundRequest) TableName() string {
	return "refund_requests"
}
