package models

import (
	"time"
)

// DefaultWarrantyTerms is applied when no terms are supplied.
const DefaultWarrantyTerms = "Bảo hành theo tiêu chuẩn XOXO"

// WarrantyRecord is a per-product warranty created when an order completes.
type WarrantyRecord struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	OrderCode      string    `gorm:"not null;index" json:"order_code"`
	ProductID      *uint     `json:"product_id,omitempty"`
	ProductName    string    `gorm:"not null" json:"product_name"`
	CustomerCode   *string   `gorm:"index" json:"customer_code,omitempty"`
	CustomerName   string    `gorm:"not null" json:"customer_name"`
	CustomerPhone  string    `gorm:"not null" json:"customer_phone"`
	WarrantyPeriod int       `gorm:"not null" json:"warranty_period"` // months
	StartDate      time.Time `gorm:"not null" json:"start_date"`
	EndDate        time.Time `gorm:"not null;index" json:"end_date"`
	Terms          string    `gorm:"not null" json:"terms"`
	Notes          string    `json:"notes"`
	CreatedByID    *uint     `json:"created_by_id,omitempty"`
	CreatedByName  string    `json:"created_by_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the WarrantyRecord model
func (WarrantyRecord) TableName() string {
	return "warranty_records"
}

// ValidAt reports whether the warranty covers the given instant.
func (w *WarrantyRecord) ValidAt(t time.Time) bool {
	return !t.Before(w.StartDate) && !t.After(w.EndDate)
}
