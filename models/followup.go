package models

import (
	"time"
)

// FollowUpType identifies which of the fixed post-completion check-ins a
// schedule entry represents.
type FollowUpType string

const (
	FollowUpTwoDays      FollowUpType = "2_days"
	FollowUpSixMonths    FollowUpType = "6_months"
	FollowUpTwelveMonths FollowUpType = "12_months"
)

// FollowUpStatus is the lifecycle status of a follow-up entry.
type FollowUpStatus string

const (
	FollowUpPending   FollowUpStatus = "pending"
	FollowUpCompleted FollowUpStatus = "completed"
	FollowUpCancelled FollowUpStatus = "cancelled"
	FollowUpOverdue   FollowUpStatus = "overdue"
)

// FollowUpSchedule is one scheduled customer check-in after order
// completion. Exactly three are created per completed order.
type FollowUpSchedule struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	OrderCode       string         `gorm:"not null;index" json:"order_code"`
	CustomerCode    *string        `json:"customer_code,omitempty"`
	CustomerName    string         `gorm:"not null" json:"customer_name"`
	CustomerPhone   string         `gorm:"not null" json:"customer_phone"`
	FollowUpType    FollowUpType   `gorm:"not null" json:"follow_up_type"`
	ScheduledDate   time.Time      `gorm:"not null;index" json:"scheduled_date"`
	CompletedDate   *time.Time     `json:"completed_date,omitempty"`
	Status          FollowUpStatus `gorm:"not null;default:'pending'" json:"status"`
	Notes           string         `json:"notes"`
	CompletedByID   *uint          `json:"completed_by_id,omitempty"`
	CompletedByName *string        `json:"completed_by_name,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the FollowUpSchedule model
func (FollowUpSchedule) TableName() string {
	return "follow_up_schedules"
}
