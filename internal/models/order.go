package models

import "time"

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

// OrderTypeFor: el método de entrega del checkout determina el tipo de pedido.
func OrderTypeFor(d DeliveryMethod) OrderType {
	if d == DeliveryHome {
		return OrderTypeDelivery
	}
	return OrderTypePickup
}

func (t OrderType) DeliveryMethod() DeliveryMethod {
	if t == OrderTypeDelivery {
		return DeliveryHome
	}
	return DeliveryStore
}

type OrderStatus string

const (
	StatusRequested      OrderStatus = "requested"
	StatusApproved       OrderStatus = "approved"
	StatusInProgress     OrderStatus = "in_progress"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusCanceled       OrderStatus = "canceled"
	StatusCompleted      OrderStatus = "completed"
)

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

type Order struct {
	ID             uint   `gorm:"primaryKey"`
	Number         string `gorm:"size:36;uniqueIndex;not null"`
	UserID         uint   `gorm:"not null;index"`
	User           *User
	Type           OrderType     `gorm:"size:20;not null"`
	PaymentMethod  PaymentMethod `gorm:"size:30;not null"`
	Status         OrderStatus   `gorm:"size:30;not null;default:requested"`
	StatusSeq      uint          `gorm:"not null;default:0"` // secuencia monótona por pedido
	BranchID       *uint
	Branch         *Branch
	UserAddressID  *uint
	UserAddress    *UserAddress
	CouponCode     string  `gorm:"size:50"`
	Subtotal       float64 `gorm:"not null"`
	ItemDiscount   float64 `gorm:"not null"`
	CouponDiscount float64 `gorm:"not null"`
	Total          float64 `gorm:"not null"`
	Details        []OrderDetail
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Líneas del pedido con precios congelados al momento de la compra.
type OrderDetail struct {
	ID                    uint `gorm:"primaryKey"`
	OrderID               uint `gorm:"not null;index"`
	ProductPresentationID uint `gorm:"not null"`
	ProductName           string
	PresentationName      string
	UnitPrice             float64 `gorm:"not null"`
	DiscountPercent       float64 `gorm:"not null"`
	Quantity              int     `gorm:"not null"`
	LineTotal             float64 `gorm:"not null"`
}

type OrderStatusHistory struct {
	ID         uint        `gorm:"primaryKey"`
	OrderID    uint        `gorm:"not null;index"`
	FromStatus OrderStatus `gorm:"size:30"`
	ToStatus   OrderStatus `gorm:"size:30;not null"`
	ChangedBy  uint
	ChangedAt  time.Time `gorm:"autoCreateTime"`
}
