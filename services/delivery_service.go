package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
)

// PickupAppointmentDuration is the slot length for customer pickups, in
// minutes.
const PickupAppointmentDuration = 30

// DeliveryService records how a finished order reaches the customer and
// triggers the pickup appointment and storage-instructions message.
type DeliveryService struct {
	db           *gorm.DB
	appointments *AppointmentService
	messages     *MessageService
}

// NewDeliveryService creates a delivery service.
func NewDeliveryService(db *gorm.DB, appointments *AppointmentService, messages *MessageService) *DeliveryService {
	return &DeliveryService{db: db, appointments: appointments, messages: messages}
}

// SetDeliveryInfoInput is the payload for updating an order's hand-off
// arrangement.
type SetDeliveryInfoInput struct {
	Method          models.DeliveryMethod `json:"method" binding:"required"`
	Address         string                `json:"address"`
	StorageLocation string                `json:"storage_location"`
	EstimatedDate   *time.Time            `json:"estimated_date"`
	Notes           string                `json:"notes"`
	StaffID         *uint                 `json:"staff_id"`
	StaffName       *string               `json:"staff_name"`
}

// Set upserts the delivery info for an order. For store pickups with an
// estimated date it also creates a 30-minute pickup appointment, and with
// a storage location it schedules the storage-instructions message for
// later delivery. Both are best-effort: failures become warnings, the
// delivery info itself is already saved.
func (s *DeliveryService) Set(orderCode string, in SetDeliveryInfoInput, actor *models.Member) (*models.DeliveryInfo, []string, error) {
	if in.Method != models.DeliveryHome && in.Method != models.DeliveryStore {
		return nil, nil, NewValidationError("INVALID_DELIVERY_METHOD",
			fmt.Sprintf("Phương thức giao hàng không hợp lệ: %s", in.Method))
	}

	var order models.Order
	if err := s.db.Where("code = ?", orderCode).First(&order).Error; err != nil {
		return nil, nil, wrapStoreErr("get order", err)
	}

	info := models.DeliveryInfo{OrderID: order.ID}
	err := s.db.Where("order_id = ?", order.ID).First(&info).Error
	if err != nil && !IsNotFound(err) {
		return nil, nil, wrapStoreErr("get delivery info", err)
	}

	info.Method = in.Method
	info.Address = in.Address
	info.StorageLocation = in.StorageLocation
	info.EstimatedDate = in.EstimatedDate
	info.Notes = in.Notes

	if err := s.db.Save(&info).Error; err != nil {
		return nil, nil, wrapStoreErr("save delivery info", err)
	}

	var warnings []string

	if in.Method == models.DeliveryStore && in.EstimatedDate != nil {
		appt := &models.Appointment{
			CustomerName:  order.CustomerName,
			CustomerPhone: order.CustomerPhone,
			CustomerCode:  order.CustomerCode,
			OrderCode:     &order.Code,
			ScheduledDate: *in.EstimatedDate,
			Duration:      PickupAppointmentDuration,
			Purpose:       "Khách hàng đến lấy hàng",
			Status:        models.AppointmentScheduled,
			StaffID:       in.StaffID,
			StaffName:     in.StaffName,
		}
		if actor != nil {
			appt.CreatedByID = &actor.ID
			appt.CreatedByName = actor.Name
		}
		if err := s.appointments.Create(appt); err != nil {
			log.Printf("Failed to create pickup appointment for %s: %v", order.Code, err)
			warnings = append(warnings, fmt.Sprintf("Không thể tạo lịch hẹn lấy hàng: %v", err))
		} else {
			if err := s.db.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("appointment_id", appt.ID).Error; err != nil {
				log.Printf("Failed to link appointment to order %s: %v", order.Code, err)
			}
		}
	}

	if in.Method == models.DeliveryStore && in.StorageLocation != "" {
		s.messages.ScheduleStorageInstructions(
			order.CustomerPhone, order.CustomerName, in.StorageLocation, order.Code)
	}

	return &info, warnings, nil
}

// Get fetches the delivery info for an order.
func (s *DeliveryService) Get(orderCode string) (*models.DeliveryInfo, error) {
	var order models.Order
	if err := s.db.Where("code = ?", orderCode).First(&order).Error; err != nil {
		return nil, wrapStoreErr("get order", err)
	}
	var info models.DeliveryInfo
	if err := s.db.Where("order_id = ?", order.ID).First(&info).Error; err != nil {
		return nil, wrapStoreErr("get delivery info", err)
	}
	return &info, nil
}
