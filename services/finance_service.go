package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

// FinanceService writes receipt rows for order payments.
type FinanceService struct {
	db *gorm.DB
}

// NewFinanceService creates a finance service on top of db.
func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

// CreateDepositReceipt records the deposit collected when an order is
// confirmed. The amount is the order's computed deposit value.
func (s *FinanceService) CreateDepositReceipt(order *models.Order, actor *models.Member) (*models.Transaction, error) {
	amount := order.DepositValue()
	if amount <= 0 {
		return nil, nil // no deposit on this order, nothing to record
	}

	tx := &models.Transaction{
		ID:        uuid.NewString(),
		OrderCode: order.Code,
		Type:      models.TransactionDeposit,
		Amount:    amount,
		Notes:     fmt.Sprintf("Thu tiền cọc đơn hàng #%s", order.Code),
	}
	if actor != nil {
		tx.CreatedByID = &actor.ID
		tx.CreatedByName = actor.Name
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, wrapStoreErr("create deposit receipt", err)
	}
	return tx, nil
}

// CreateRemainingReceipt records the balance collected when an order
// completes: total minus whatever deposit was persisted at confirmation.
func (s *FinanceService) CreateRemainingReceipt(order *models.Order, actor *models.Member) (*models.Transaction, error) {
	amount := order.Total() - order.DepositAmount
	if amount <= 0 {
		return nil, nil
	}

	tx := &models.Transaction{
		ID:        uuid.NewString(),
		OrderCode: order.Code,
		Type:      models.TransactionRemaining,
		Amount:    amount,
		Notes:     fmt.Sprintf("Thu số tiền còn lại đơn hàng #%s", order.Code),
	}
	if actor != nil {
		tx.CreatedByID = &actor.ID
		tx.CreatedByName = actor.Name
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, wrapStoreErr("create remaining receipt", err)
	}
	return tx, nil
}

// GetByOrderCode lists receipts for an order in creation order.
func (s *FinanceService) GetByOrderCode(orderCode string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.Where("order_code = ?", orderCode).Order("created_at").Find(&txs).Error; err != nil {
		return nil, wrapStoreErr("list receipts by order", err)
	}
	return txs, nil
}
