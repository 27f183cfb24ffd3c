package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the lifecycle status of an order.
// The forward progression is pending -> confirmed -> in_progress -> on_hold -> completed.
// cancelled and refund are side exits reachable from any non-terminal state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderInProgress OrderStatus = "in_progress"
	OrderOnHold     OrderStatus = "on_hold"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefund     OrderStatus = "refund"
)

// ValidOrderStatus reports whether s is one of the declared status values.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderInProgress, OrderOnHold,
		OrderCompleted, OrderCancelled, OrderRefund:
		return true
	}
	return false
}

// DiscountType selects how a discount or deposit value is interpreted.
type DiscountType string

const (
	DiscountAmount     DiscountType = "amount"
	DiscountPercentage DiscountType = "percentage"
)

// Order represents a customer's overall service request.
// The code is assigned at creation and never changes.
type Order struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Code           string       `gorm:"uniqueIndex;not null" json:"code"`
	CustomerName   string       `gorm:"not null" json:"customer_name"`
	CustomerPhone  string       `gorm:"not null" json:"customer_phone"`
	CustomerEmail  string       `json:"customer_email"`
	Address        string       `json:"address"`
	CustomerSource string       `json:"customer_source"` // facebook, zalo, instagram, tiktok, website, referral, walk_in, phone, other
	CustomerCode   *string      `json:"customer_code,omitempty"`
	Status         OrderStatus  `gorm:"not null;default:'pending'" json:"status"`
	Notes          string       `json:"notes"`
	Discount       float64      `json:"discount"`
	DiscountType   DiscountType `gorm:"default:'amount'" json:"discount_type"`
	ShippingFee    float64      `json:"shipping_fee"`

	// Deposit is the raw value entered by staff; DepositAmount is computed
	// from it against the order total and persisted only when the order is
	// confirmed with the deposit marked as paid.
	Deposit       float64      `json:"deposit"`
	DepositType   DiscountType `gorm:"default:'percentage'" json:"deposit_type"`
	DepositAmount float64      `json:"deposit_amount"`
	IsDepositPaid bool         `gorm:"not null;default:false" json:"is_deposit_paid"`

	// Links to records created by downstream schedulers. Those records
	// outlive order edits; these ids are convenience references only.
	AppointmentID   *string `json:"appointment_id,omitempty"`
	WarrantyID      *string `json:"warranty_id,omitempty"`
	RefundRequestID *string `json:"refund_request_id,omitempty"`

	Products      []Product     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	DeliveryInfo  *DeliveryInfo `gorm:"foreignKey:OrderID" json:"delivery_info,omitempty"`
	CreatedByID   uint          `gorm:"index" json:"created_by_id"`
	CreatedByName string        `json:"created_by_name"`
	OrderDate     time.Time     `json:"order_date"`
	DeliveryDate  time.Time     `json:"delivery_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Subtotal is the sum of quantity times unit price across all products.
func (o *Order) Subtotal() float64 {
	var sum float64
	for i := range o.Products {
		sum += float64(o.Products[i].Quantity) * o.Products[i].Price
	}
	return sum
}

// DiscountValue computes the effective discount amount at call time.
// It is never persisted, so it cannot go stale when products change.
func (o *Order) DiscountValue() float64 {
	if o.DiscountType == DiscountPercentage {
		return o.Subtotal() * o.Discount / 100
	}
	return o.Discount
}

// Total is subtotal minus discount plus shipping fee, computed on demand.
func (o *Order) Total() float64 {
	return o.Subtotal() - o.DiscountValue() + o.ShippingFee
}

// DepositValue computes the deposit owed for this order: a flat amount or
// a percentage of the current total depending on DepositType.
func (o *Order) DepositValue() float64 {
	if o.DepositType == DiscountPercentage {
		return o.Total() * o.Deposit / 100
	}
	return o.Deposit
}

// Product is a single item/service line within an order.
type Product struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	OrderID              uint           `gorm:"not null;index" json:"order_id"`
	Name                 string         `gorm:"not null" json:"name"`
	Quantity             int            `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price                float64        `gorm:"not null" json:"price"`
	CommissionPercentage *float64       `json:"commission_percentage,omitempty"`
	Images               []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Workflows            []WorkflowStep `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"workflows"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ImageCount returns how many photos of the given phase the product has.
func (p *Product) ImageCount(phase ImagePhase) int {
	n := 0
	for i := range p.Images {
		if p.Images[i].Phase == phase {
			n++
		}
	}
	return n
}

// Progress is the fraction of workflow steps marked done, in [0, 1].
// Derived on read; a product with no steps has zero progress.
func (p *Product) Progress() float64 {
	if len(p.Workflows) == 0 {
		return 0
	}
	done := 0
	for i := range p.Workflows {
		if p.Workflows[i].IsDone {
			done++
		}
	}
	return float64(done) / float64(len(p.Workflows))
}

// ImagePhase distinguishes photos taken before work starts from photos of
// the finished product.
type ImagePhase string

const (
	ImageBefore ImagePhase = "before"
	ImageAfter  ImagePhase = "after"
)

// ProductImage is one uploaded photo of a product.
type ProductImage struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProductID uint       `gorm:"not null;index" json:"product_id"`
	Phase     ImagePhase `gorm:"not null;default:'before'" json:"phase"`
	S3Key     string     `gorm:"not null" json:"s3_key"`
	URL       string     `gorm:"-" json:"url,omitempty"` // computed field, presigned URL
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for the ProductImage model
func (ProductImage) TableName() string {
	return "product_images"
}

// WorkflowStep is one unit of production work on a product. Steps are
// independent of each other; completion order between steps is not enforced.
type WorkflowStep struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ProductID      uint       `gorm:"not null;index" json:"product_id"`
	WorkflowCode   string     `gorm:"not null" json:"workflow_code"`
	WorkflowName   string     `gorm:"not null" json:"workflow_name"`
	DepartmentCode string     `json:"department_code"`
	Members        []string   `gorm:"serializer:json" json:"members"` // assigned member ids
	IsDone         bool       `gorm:"not null;default:false" json:"is_done"`
	ApprovedByID   *uint      `json:"approved_by_id,omitempty"`
	ApprovedByName *string    `json:"approved_by_name,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	SortOrder      int        `json:"sort_order"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the WorkflowStep model
func (WorkflowStep) TableName() string {
	return "workflow_steps"
}

// IsApproved reports whether the step carries an approval.
func (s *WorkflowStep) IsApproved() bool {
	return s.ApprovedByID != nil
}
