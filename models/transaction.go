package models

import (
	"time"
)

// TransactionType distinguishes the deposit receipt written at
// confirmation from the remaining-amount receipt written at completion.
type TransactionType string

const (
	TransactionDeposit   TransactionType = "deposit"
	TransactionRemaining TransactionType = "remaining"
)

// Transaction is a finance receipt row tied to an order.
type Transaction struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	OrderCode     string          `gorm:"not null;index" json:"order_code"`
	Type          TransactionType `gorm:"not null" json:"type"`
	Amount        float64         `gorm:"not null" json:"amount"`
	Notes         string          `json:"notes"`
	CreatedByID   *uint           `json:"created_by_id,omitempty"`
	CreatedByName string          `json:"created_by_name"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
