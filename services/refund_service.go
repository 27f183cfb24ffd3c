package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

// RefundService manages the refund side exit: requesting moves the order
// to refund status and opens a request record for admin review.
type RefundService struct {
	db  *gorm.DB
	bus *EventBus
	now func() time.Time
}

// NewRefundService creates a refund service on top of db.
func NewRefundService(db *gorm.DB, bus *EventBus) *RefundService {
	return &RefundService{db: db, bus: bus, now: time.Now}
}

// Request opens a refund request for an order and moves the order to
// refund status. Cancelled orders and orders already in refund cannot be
// refunded again.
func (s *RefundService) Request(orderCode, reason string, amount float64, actor *models.Member) (*models.RefundRequest, error) {
	if reason == "" {
		return nil, NewValidationError("MISSING_REASON", "Vui lòng nhập lý do hoàn tiền.")
	}

	var order models.Order
	if err := s.db.Preload("Products").Where("code = ?", orderCode).First(&order).Error; err != nil {
		return nil, wrapStoreErr("get order", err)
	}
	if order.Status == models.OrderCancelled || order.Status == models.OrderRefund {
		return nil, NewValidationError("INVALID_ORDER_STATE",
			fmt.Sprintf("Không thể hoàn tiền đơn hàng ở trạng thái %s.", order.Status))
	}
	if amount <= 0 {
		amount = order.Total()
	}

	req := &models.RefundRequest{
		ID:            uuid.NewString(),
		OrderCode:     order.Code,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Reason:        reason,
		Amount:        amount,
		Status:        models.RefundPending,
	}
	if actor != nil {
		req.RequestedByID = &actor.ID
		req.RequestedBy = actor.Name
	}
	if err := s.db.Create(req).Error; err != nil {
		return nil, wrapStoreErr("create refund request", err)
	}

	changes := map[string]interface{}{
		"status":            models.OrderRefund,
		"refund_request_id": req.ID,
		"updated_at":        s.now(),
	}
	if err := s.db.Model(&models.Order{}).Where("code = ?", orderCode).Updates(changes).Error; err != nil {
		return nil, wrapStoreErr("move order to refund", err)
	}

	if s.bus != nil {
		ev := OrderEvent{OrderCode: order.Code, Status: models.OrderRefund, At: s.now()}
		if actor != nil {
			ev.ChangedBy = actor.Name
		}
		s.bus.Publish(ev)
	}

	return req, nil
}

// Review approves or rejects a pending refund request.
func (s *RefundService) Review(id string, approve bool, notes string, reviewer *models.Member) (*models.RefundRequest, error) {
	var req models.RefundRequest
	if err := s.db.Where("id = ?", id).First(&req).Error; err != nil {
		return nil, wrapStoreErr("get refund request", err)
	}
	if req.Status != models.RefundPending {
		return nil, NewValidationError("ALREADY_REVIEWED",
			fmt.Sprintf("Yêu cầu hoàn tiền đã được xử lý (%s).", req.Status))
	}

	status := models.RefundRejected
	if approve {
		status = models.RefundApproved
	}
	now := s.now()
	changes := map[string]interface{}{
		"status":       status,
		"reviewed_at":  now,
		"review_notes": notes,
	}
	if reviewer != nil {
		changes["reviewed_by_id"] = reviewer.ID
		changes["reviewed_by_name"] = reviewer.Name
	}
	if err := s.db.Model(&req).Updates(changes).Error; err != nil {
		return nil, wrapStoreErr("review refund request", err)
	}

	req.Status = status
	req.ReviewedAt = &now
	req.ReviewNotes = notes
	if reviewer != nil {
		req.ReviewedByID = &reviewer.ID
		req.ReviewedByName = &reviewer.Name
	}
	return &req, nil
}

// GetByOrderCode lists refund requests for an order, newest first.
func (s *RefundService) GetByOrderCode(orderCode string) ([]models.RefundRequest, error) {
	var reqs []models.RefundRequest
	if err := s.db.Where("order_code = ?", orderCode).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, wrapStoreErr("list refund requests", err)
	}
	return reqs, nil
}

// ListPending lists refund requests awaiting review, oldest first.
func (s *RefundService) ListPending() ([]models.RefundRequest, error) {
	var reqs []models.RefundRequest
	if err := s.db.Where("status = ?", models.RefundPending).Order("created_at").Find(&reqs).Error; err != nil {
		return nil, wrapStoreErr("list pending refund requests", err)
	}
	return reqs, nil
}
