package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

// MessageService renders customer notification templates and records them
// in the message log. Delivery through an SMS/Zalo gateway is outside
// this system; a logged message counts as sent.
type MessageService struct {
	db    *gorm.DB
	now   func() time.Time
	delay time.Duration // wait before storage-instructions messages go out
}

// NewMessageService creates a message service. delay controls how long
// storage-instructions messages are held before sending.
func NewMessageService(db *gorm.DB, delay time.Duration) *MessageService {
	return &MessageService{db: db, now: time.Now, delay: delay}
}

func (s *MessageService) send(eventType models.MessageEventType, phone, customerName, content string, orderCode *string) (*models.MessageLog, error) {
	entry := &models.MessageLog{
		ID:           uuid.NewString(),
		EventType:    eventType,
		Phone:        phone,
		CustomerName: customerName,
		Content:      content,
		OrderCode:    orderCode,
		SentAt:       s.now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, wrapStoreErr("log message", err)
	}
	return entry, nil
}

// SendOrderConfirmed notifies the customer that their order was confirmed.
func (s *MessageService) SendOrderConfirmed(phone, customerName, orderCode string) (*models.MessageLog, error) {
	content := fmt.Sprintf(
		"Xin chào %s, đơn hàng #%s của bạn đã được xác nhận. Cảm ơn bạn đã tin tưởng XOXO!",
		customerName, orderCode)
	return s.send(models.MessageOrderConfirmed, phone, customerName, content, &orderCode)
}

// SendProductReady notifies the customer that their order is finished.
func (s *MessageService) SendProductReady(phone, customerName, orderCode string) (*models.MessageLog, error) {
	content := fmt.Sprintf(
		"Xin chào %s, đơn hàng #%s của bạn đã hoàn thành và sẵn sàng để nhận.",
		customerName, orderCode)
	return s.send(models.MessageProductReady, phone, customerName, content, &orderCode)
}

// SendFeedbackRequest asks the customer for feedback on a finished order.
func (s *MessageService) SendFeedbackRequest(phone, customerName, orderCode string) (*models.MessageLog, error) {
	content := fmt.Sprintf(
		"Xin chào %s, bạn có hài lòng với đơn hàng #%s không? XOXO rất mong nhận được đánh giá của bạn.",
		customerName, orderCode)
	return s.send(models.MessageFeedbackRequest, phone, customerName, content, &orderCode)
}

// SendStorageInstructions tells the customer where their finished items
// are stored for pickup.
func (s *MessageService) SendStorageInstructions(phone, customerName, storageLocation, orderCode string) (*models.MessageLog, error) {
	content := fmt.Sprintf(
		"Xin chào %s, đơn hàng #%s của bạn đang được lưu tại %s. Vui lòng mang theo mã đơn khi đến nhận.",
		customerName, orderCode, storageLocation)
	return s.send(models.MessageStorageInstructions, phone, customerName, content, &orderCode)
}

// ScheduleStorageInstructions arranges for the storage-instructions
// message to be sent after the configured delay. The timer is in-memory
// only and is not persisted: if the process stops before it fires, the
// message is lost.
func (s *MessageService) ScheduleStorageInstructions(phone, customerName, storageLocation, orderCode string) {
	time.AfterFunc(s.delay, func() {
		if _, err := s.SendStorageInstructions(phone, customerName, storageLocation, orderCode); err != nil {
			log.Printf("Failed to send storage instructions for order %s: %v", orderCode, err)
		}
	})
}

// GetByOrderCode lists logged messages for an order, newest first.
func (s *MessageService) GetByOrderCode(orderCode string) ([]models.MessageLog, error) {
	var logs []models.MessageLog
	if err := s.db.Where("order_code = ?", orderCode).Order("sent_at DESC").Find(&logs).Error; err != nil {
		return nil, wrapStoreErr("list messages by order", err)
	}
	return logs, nil
}
