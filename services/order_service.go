package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/utils"
)

// OrderService owns order intake and the status transition policy: it
// validates a requested status change against the order's products,
// applies it, and dispatches the downstream side effects.
type OrderService struct {
	db             *gorm.DB
	warranties     *WarrantyService
	followUps      *FollowUpService
	messages       *MessageService
	finance        *FinanceService
	bus            *EventBus
	warrantyMonths int
	now            func() time.Time
}

// NewOrderService wires the order service with its downstream schedulers.
func NewOrderService(db *gorm.DB, warranties *WarrantyService, followUps *FollowUpService, messages *MessageService, finance *FinanceService, bus *EventBus, warrantyMonths int) *OrderService {
	if warrantyMonths <= 0 {
		warrantyMonths = 12
	}
	return &OrderService{
		db:             db,
		warranties:     warranties,
		followUps:      followUps,
		messages:       messages,
		finance:        finance,
		bus:            bus,
		warrantyMonths: warrantyMonths,
		now:            time.Now,
	}
}

// NewProductInput describes one product line at order creation.
type NewProductInput struct {
	Name                 string             `json:"name" binding:"required"`
	Quantity             int                `json:"quantity" binding:"required,gt=0"`
	Price                float64            `json:"price" binding:"required,gte=0"`
	CommissionPercentage *float64           `json:"commission_percentage"`
	Workflows            []NewWorkflowInput `json:"workflows"`
}

// NewWorkflowInput describes one workflow step attached to a new product.
type NewWorkflowInput struct {
	WorkflowCode   string   `json:"workflow_code" binding:"required"`
	WorkflowName   string   `json:"workflow_name" binding:"required"`
	DepartmentCode string   `json:"department_code"`
	Members        []string `json:"members"`
	SortOrder      int      `json:"sort_order"`
}

// CreateOrderInput is the payload for order intake.
type CreateOrderInput struct {
	CustomerName   string            `json:"customer_name" binding:"required"`
	CustomerPhone  string            `json:"customer_phone" binding:"required"`
	CustomerEmail  string            `json:"customer_email"`
	Address        string            `json:"address"`
	CustomerSource string            `json:"customer_source"`
	CustomerCode   *string           `json:"customer_code"`
	Notes          string            `json:"notes"`
	Discount       float64           `json:"discount"`
	DiscountType   string            `json:"discount_type"`
	ShippingFee    float64           `json:"shipping_fee"`
	Deposit        float64           `json:"deposit"`
	DepositType    string            `json:"deposit_type"`
	OrderDate      time.Time         `json:"order_date"`
	DeliveryDate   time.Time         `json:"delivery_date"`
	Products       []NewProductInput `json:"products" binding:"required,min=1"`
}

// Create persists a new pending order with a generated code.
func (s *OrderService) Create(in CreateOrderInput, actor *models.Member) (*models.Order, error) {
	order := &models.Order{
		Code:           utils.GenerateOrderCode(),
		CustomerName:   in.CustomerName,
		CustomerPhone:  in.CustomerPhone,
		CustomerEmail:  in.CustomerEmail,
		Address:        in.Address,
		CustomerSource: in.CustomerSource,
		CustomerCode:   in.CustomerCode,
		Status:         models.OrderPending,
		Notes:          in.Notes,
		Discount:       in.Discount,
		DiscountType:   models.DiscountType(in.DiscountType),
		ShippingFee:    in.ShippingFee,
		Deposit:        in.Deposit,
		DepositType:    models.DiscountType(in.DepositType),
		OrderDate:      in.OrderDate,
		DeliveryDate:   in.DeliveryDate,
	}
	if order.DiscountType == "" {
		order.DiscountType = models.DiscountAmount
	}
	if order.DepositType == "" {
		order.DepositType = models.DiscountPercentage
	}
	if actor != nil {
		order.CreatedByID = actor.ID
		order.CreatedByName = actor.Name
	}

	for _, p := range in.Products {
		product := models.Product{
			Name:                 p.Name,
			Quantity:             p.Quantity,
			Price:                p.Price,
			CommissionPercentage: p.CommissionPercentage,
		}
		for _, w := range p.Workflows {
			product.Workflows = append(product.Workflows, models.WorkflowStep{
				WorkflowCode:   w.WorkflowCode,
				WorkflowName:   w.WorkflowName,
				DepartmentCode: w.DepartmentCode,
				Members:        w.Members,
				SortOrder:      w.SortOrder,
			})
		}
		order.Products = append(order.Products, product)
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, wrapStoreErr("create order", err)
	}
	return order, nil
}

// GetByCode fetches an order with its products, photos and steps.
func (s *OrderService) GetByCode(code string) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Products").
		Preload("Products.Images").
		Preload("Products.Workflows").
		Preload("DeliveryInfo").
		Where("code = ?", code).
		First(&order).Error
	if err != nil {
		return nil, wrapStoreErr("get order", err)
	}
	return &order, nil
}

// List returns orders newest first, optionally filtered by status.
func (s *OrderService) List(status models.OrderStatus) ([]models.Order, error) {
	q := s.db.Preload("Products").Preload("Products.Workflows").Order("created_at DESC")
	if status != "" {
		if !models.ValidOrderStatus(status) {
			return nil, NewValidationError("INVALID_STATUS", fmt.Sprintf("Trạng thái đơn hàng không hợp lệ: %s", status))
		}
		q = q.Where("status = ?", status)
	}
	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, wrapStoreErr("list orders", err)
	}
	return orders, nil
}

// TransitionInput is a staff request to change an order's status. The
// deposit block applies only to transitions into confirmed: the flag must
// be set in the same request, and deposit/deposit type, when present,
// replace the values entered at intake.
type TransitionInput struct {
	NextStatus    models.OrderStatus `json:"status" binding:"required"`
	IsDepositPaid bool               `json:"is_deposit_paid"`
	Deposit       *float64           `json:"deposit"`
	DepositType   *string            `json:"deposit_type"`
}

// TransitionResult reports the applied transition. Warnings carry side
// effect failures; the status change itself has already been committed
// when any warning is present.
type TransitionResult struct {
	Order    *models.Order `json:"order"`
	Warnings []string      `json:"warnings,omitempty"`
}

// ChangeStatus validates and applies the requested status change.
//
// Gates, checked synchronously before any write:
//   - the target status must be a declared enum value;
//   - into confirmed: every product needs at least one before-photo and
//     the deposit must be confirmed in this same request;
//   - on_hold into completed: every product needs at least one
//     after-photo. Other paths into completed are not gated this way.
//
// Side effects fire after the status write, each independently; failures
// are collected as warnings and never roll the status back.
func (s *OrderService) ChangeStatus(orderCode string, in TransitionInput, actor *models.Member) (*TransitionResult, error) {
	if !models.ValidOrderStatus(in.NextStatus) {
		return nil, NewValidationError("INVALID_STATUS",
			fmt.Sprintf("Trạng thái đơn hàng không hợp lệ: %s", in.NextStatus))
	}

	order, err := s.GetByCode(orderCode)
	if err != nil {
		return nil, err
	}
	prev := order.Status

	if in.Deposit != nil {
		order.Deposit = *in.Deposit
	}
	if in.DepositType != nil {
		order.DepositType = models.DiscountType(*in.DepositType)
	}

	if err := s.checkGates(order, prev, in); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{
		"status":     in.NextStatus,
		"updated_at": s.now(),
	}
	if in.NextStatus == models.OrderConfirmed {
		// Deposit amount is computed against the current total at the
		// moment of confirmation and persisted alongside the paid flag.
		changes["deposit"] = order.Deposit
		changes["deposit_type"] = order.DepositType
		changes["deposit_amount"] = order.DepositValue()
		changes["is_deposit_paid"] = true
	}
	if err := s.db.Model(&models.Order{}).Where("code = ?", orderCode).Updates(changes).Error; err != nil {
		return nil, wrapStoreErr("update order status", err)
	}

	order.Status = in.NextStatus
	if in.NextStatus == models.OrderConfirmed {
		order.DepositAmount = order.DepositValue()
		order.IsDepositPaid = true
	}

	if s.bus != nil {
		ev := OrderEvent{OrderCode: order.Code, Status: order.Status, At: s.now()}
		if actor != nil {
			ev.ChangedBy = actor.Name
		}
		s.bus.Publish(ev)
	}

	var warnings []string
	if in.NextStatus == models.OrderConfirmed && prev != models.OrderConfirmed {
		warnings = append(warnings, s.onConfirmed(order, actor)...)
	}
	if in.NextStatus == models.OrderCompleted && prev != models.OrderCompleted {
		warnings = append(warnings, s.onCompleted(order, actor)...)
	}

	return &TransitionResult{Order: order, Warnings: warnings}, nil
}

// checkGates runs the structural validations for the requested target.
func (s *OrderService) checkGates(order *models.Order, prev models.OrderStatus, in TransitionInput) error {
	switch in.NextStatus {
	case models.OrderConfirmed:
		var missing []string
		for i := range order.Products {
			if order.Products[i].ImageCount(models.ImageBefore) == 0 {
				missing = append(missing, order.Products[i].Name)
			}
		}
		if len(missing) > 0 {
			return NewValidationError("MISSING_PRODUCT_IMAGES",
				fmt.Sprintf("Vui lòng tải lên ít nhất một ảnh cho mỗi sản phẩm trước khi xác nhận. Sản phẩm chưa có ảnh: %s",
					strings.Join(missing, ", ")))
		}
		if !in.IsDepositPaid {
			return NewValidationError("DEPOSIT_NOT_CONFIRMED",
				"Vui lòng xác nhận khách hàng đã đặt cọc.")
		}

	case models.OrderCompleted:
		// Only the on_hold path requires finished-product photos. Other
		// paths into completed are intentionally left ungated.
		if prev == models.OrderOnHold {
			var missing []string
			for i := range order.Products {
				if order.Products[i].ImageCount(models.ImageAfter) == 0 {
					missing = append(missing, order.Products[i].Name)
				}
			}
			if len(missing) > 0 {
				return NewValidationError("MISSING_DONE_IMAGES",
					fmt.Sprintf("Vui lòng tải lên ảnh sau khi hoàn thiện cho tất cả sản phẩm. Sản phẩm chưa có ảnh: %s",
						strings.Join(missing, ", ")))
			}
		}
	}
	return nil
}

// onConfirmed runs the confirmation side effects, best-effort.
func (s *OrderService) onConfirmed(order *models.Order, actor *models.Member) []string {
	var warnings []string

	if _, err := s.messages.SendOrderConfirmed(order.CustomerPhone, order.CustomerName, order.Code); err != nil {
		log.Printf("Failed to send order confirmation message for %s: %v", order.Code, err)
		warnings = append(warnings, fmt.Sprintf("Không thể gửi tin nhắn xác nhận: %v", err))
	}

	if _, err := s.finance.CreateDepositReceipt(order, actor); err != nil {
		log.Printf("Failed to create deposit receipt for %s: %v", order.Code, err)
		warnings = append(warnings, fmt.Sprintf("Không thể tạo phiếu thu tiền cọc: %v", err))
	}

	return warnings
}

// onCompleted runs the completion side effects, best-effort: one warranty
// per product, the three follow-up entries, and the remaining-amount
// receipt. Delivery hand-off records are managed by the delivery flow.
func (s *OrderService) onCompleted(order *models.Order, actor *models.Member) []string {
	var warnings []string

	var firstWarrantyID string
	for i := range order.Products {
		w, err := s.warranties.CreateForProduct(order, &order.Products[i], s.warrantyMonths, actor)
		if err != nil {
			log.Printf("Failed to create warranty for %s/%s: %v", order.Code, order.Products[i].Name, err)
			warnings = append(warnings, fmt.Sprintf("Không thể tạo bảo hành cho sản phẩm %s: %v", order.Products[i].Name, err))
			continue
		}
		if firstWarrantyID == "" {
			firstWarrantyID = w.ID
		}
	}
	if firstWarrantyID != "" {
		if err := s.db.Model(&models.Order{}).Where("code = ?", order.Code).
			Update("warranty_id", firstWarrantyID).Error; err != nil {
			log.Printf("Failed to link warranty to order %s: %v", order.Code, err)
		}
	}

	if _, err := s.followUps.CreateSchedules(order, s.now()); err != nil {
		log.Printf("Failed to create follow-up schedules for %s: %v", order.Code, err)
		warnings = append(warnings, fmt.Sprintf("Không thể tạo lịch chăm sóc khách hàng: %v", err))
	}

	if _, err := s.finance.CreateRemainingReceipt(order, actor); err != nil {
		log.Printf("Failed to create remaining receipt for %s: %v", order.Code, err)
		warnings = append(warnings, fmt.Sprintf("Không thể tạo phiếu thu số tiền còn lại: %v", err))
	}

	return warnings
}
