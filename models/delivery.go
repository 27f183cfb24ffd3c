package models

import (
	"time"
)

// DeliveryMethod selects how the finished order reaches the customer.
type DeliveryMethod string

const (
	DeliveryHome  DeliveryMethod = "home_delivery"
	DeliveryStore DeliveryMethod = "store"
)

// DeliveryInfo holds the hand-off arrangement for one order.
type DeliveryInfo struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	OrderID         uint           `gorm:"not null;uniqueIndex" json:"order_id"`
	Method          DeliveryMethod `gorm:"not null" json:"method"`
	Address         string         `json:"address"`
	StorageLocation string         `json:"storage_location"` // shelf/bin for store pickup
	EstimatedDate   *time.Time     `json:"estimated_date,omitempty"`
	Notes           string         `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the DeliveryInfo model
func (DeliveryInfo) TableName() string {
	return "delivery_info"
}
