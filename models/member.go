package models

import (
	"time"

	"gorm.io/gorm"
)

// Member represents a staff member in the system
type Member struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string         `json:"phone"`
	Role      string         `gorm:"not null;default:'worker'" json:"role"` // "admin", "sales", "worker" or "development"
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Member model
func (Member) TableName() string {
	return "members"
}

// Staff roles. Admin can do everything; sales handles order intake and
// status changes; workers complete workflow steps.
const (
	RoleAdmin       = "admin"
	RoleSales       = "sales"
	RoleWorker      = "worker"
	RoleDevelopment = "development"
)

// ValidRole reports whether role is one of the declared staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSales, RoleWorker, RoleDevelopment:
		return true
	}
	return false
}
