package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/utils"
)

// WarrantyService manages per-product warranty records.
type WarrantyService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewWarrantyService creates a warranty service on top of db.
func NewWarrantyService(db *gorm.DB) *WarrantyService {
	return &WarrantyService{db: db, now: time.Now}
}

// CreateForProduct creates a warranty starting now and running for
// periodMonths calendar months. Month arithmetic clamps to month end, so
// a warranty started Jan 31 ends on the last day of the target month
// rather than drifting into the next one.
func (s *WarrantyService) CreateForProduct(order *models.Order, product *models.Product, periodMonths int, actor *models.Member) (*models.WarrantyRecord, error) {
	if periodMonths <= 0 {
		periodMonths = 12
	}
	start := s.now()

	w := &models.WarrantyRecord{
		ID:             uuid.NewString(),
		OrderCode:      order.Code,
		ProductID:      &product.ID,
		ProductName:    product.Name,
		CustomerCode:   order.CustomerCode,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		WarrantyPeriod: periodMonths,
		StartDate:      start,
		EndDate:        utils.AddMonths(start, periodMonths),
		Terms:          models.DefaultWarrantyTerms,
	}
	if actor != nil {
		w.CreatedByID = &actor.ID
		w.CreatedByName = actor.Name
	}

	if err := s.db.Create(w).Error; err != nil {
		return nil, wrapStoreErr("create warranty", err)
	}
	return w, nil
}

// GetByID fetches one warranty record.
func (s *WarrantyService) GetByID(id string) (*models.WarrantyRecord, error) {
	var w models.WarrantyRecord
	if err := s.db.Where("id = ?", id).First(&w).Error; err != nil {
		return nil, wrapStoreErr("get warranty", err)
	}
	return &w, nil
}

// GetByOrderCode lists warranties created for an order.
func (s *WarrantyService) GetByOrderCode(orderCode string) ([]models.WarrantyRecord, error) {
	var ws []models.WarrantyRecord
	if err := s.db.Where("order_code = ?", orderCode).Find(&ws).Error; err != nil {
		return nil, wrapStoreErr("list warranties by order", err)
	}
	return ws, nil
}

// GetByCustomerCode lists warranties held by a customer.
func (s *WarrantyService) GetByCustomerCode(customerCode string) ([]models.WarrantyRecord, error) {
	var ws []models.WarrantyRecord
	if err := s.db.Where("customer_code = ?", customerCode).Find(&ws).Error; err != nil {
		return nil, wrapStoreErr("list warranties by customer", err)
	}
	return ws, nil
}

// GetExpiringSoon lists warranties still active now but ending within the
// given number of days.
func (s *WarrantyService) GetExpiringSoon(days int) ([]models.WarrantyRecord, error) {
	if days <= 0 {
		days = 30
	}
	now := s.now()
	threshold := now.AddDate(0, 0, days)

	var ws []models.WarrantyRecord
	if err := s.db.Where("end_date > ? AND end_date <= ?", now, threshold).
		Order("end_date").Find(&ws).Error; err != nil {
		return nil, wrapStoreErr("list expiring warranties", err)
	}
	return ws, nil
}
