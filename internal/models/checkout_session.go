package models

import "time"

// CheckoutSession: selección de checkout en curso de un cliente. Se persiste
// en cada cambio para que una recarga retome el flujo donde quedó.
// Una sesión por usuario.
type CheckoutSession struct {
	ID             uint           `gorm:"primaryKey"`
	UserID         uint           `gorm:"not null;uniqueIndex"`
	DeliveryMethod DeliveryMethod `gorm:"size:20"`
	PaymentMethod  PaymentMethod  `gorm:"size:30"`
	BranchID       uint           `gorm:"default:0"`
	BranchLabel    string         `gorm:"size:100"`
	UserAddressID  uint           `gorm:"default:0"`
	CouponCode     string         `gorm:"size:50"`
	CouponDiscount float64        `gorm:"default:0"`
	OrderID        uint           `gorm:"default:0"`
	Locked         bool           `gorm:"default:false"` // pedido rechazado: la selección queda congelada
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
