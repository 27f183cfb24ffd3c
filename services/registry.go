package services

import (
	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/config"
)

// Domain service instances, initialized once at startup. Tests swap them
// with the Set functions, mirroring how the image and S3 services are
// injected.
var (
	orderServiceInstance       *OrderService
	workflowServiceInstance    *WorkflowService
	appointmentServiceInstance *AppointmentService
	warrantyServiceInstance    *WarrantyService
	followUpServiceInstance    *FollowUpService
	messageServiceInstance     *MessageService
	financeServiceInstance     *FinanceService
	deliveryServiceInstance    *DeliveryService
	refundServiceInstance      *RefundService
	eventBusInstance           *EventBus
)

// InitDomainServices builds and wires every domain service on top of db.
func InitDomainServices(db *gorm.DB, cfg *config.Config) {
	bus := NewEventBus()
	appointments := NewAppointmentService(db)
	warranties := NewWarrantyService(db)
	followUps := NewFollowUpService(db)
	messages := NewMessageService(db, cfg.StorageMessageDelay)
	finance := NewFinanceService(db)

	eventBusInstance = bus
	appointmentServiceInstance = appointments
	warrantyServiceInstance = warranties
	followUpServiceInstance = followUps
	messageServiceInstance = messages
	financeServiceInstance = finance
	workflowServiceInstance = NewWorkflowService(db)
	orderServiceInstance = NewOrderService(db, warranties, followUps, messages, finance, bus, cfg.WarrantyPeriodMonths)
	deliveryServiceInstance = NewDeliveryService(db, appointments, messages)
	refundServiceInstance = NewRefundService(db, bus)
}

// GetOrderService returns the initialized order service instance
func GetOrderService() *OrderService { return orderServiceInstance }

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(s *OrderService) { orderServiceInstance = s }

// GetWorkflowService returns the initialized workflow service instance
func GetWorkflowService() *WorkflowService { return workflowServiceInstance }

// SetWorkflowService sets the workflow service instance (primarily for testing)
func SetWorkflowService(s *WorkflowService) { workflowServiceInstance = s }

// GetAppointmentService returns the initialized appointment service instance
func GetAppointmentService() *AppointmentService { return appointmentServiceInstance }

// SetAppointmentService sets the appointment service instance (primarily for testing)
func SetAppointmentService(s *AppointmentService) { appointmentServiceInstance = s }

// GetWarrantyService returns the initialized warranty service instance
func GetWarrantyService() *WarrantyService { return warrantyServiceInstance }

// SetWarrantyService sets the warranty service instance (primarily for testing)
func SetWarrantyService(s *WarrantyService) { warrantyServiceInstance = s }

// GetFollowUpService returns the initialized follow-up service instance
func GetFollowUpService() *FollowUpService { return followUpServiceInstance }

// SetFollowUpService sets the follow-up service instance (primarily for testing)
func SetFollowUpService(s *FollowUpService) { followUpServiceInstance = s }

// GetMessageService returns the initialized message service instance
func GetMessageService() *MessageService { return messageServiceInstance }

// SetMessageService sets the message service instance (primarily for testing)
func SetMessageService(s *MessageService) { messageServiceInstance = s }

// GetFinanceService returns the initialized finance service instance
func GetFinanceService() *FinanceService { return financeServiceInstance }

// SetFinanceService sets the finance service instance (primarily for testing)
func SetFinanceService(s *FinanceService) { financeServiceInstance = s }

// GetDeliveryService returns the initialized delivery service instance
func GetDeliveryService() *DeliveryService { return deliveryServiceInstance }

// SetDeliveryService sets the delivery service instance (primarily for testing)
func SetDeliveryService(s *DeliveryService) { deliveryServiceInstance = s }

// GetRefundService returns the initialized refund service instance
func GetRefundService() *RefundService { return refundServiceInstance }

// SetRefundService sets the refund service instance (primarily for testing)
func SetRefundService(s *RefundService) { refundServiceInstance = s }

// GetEventBus returns the shared order event bus
func GetEventBus() *EventBus { return eventBusInstance }
