package models

import "time"

// Bank: cuenta receptora que se muestra en el paso de revisión de datos
// para transferencias y pago móvil.
type Bank struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null"`
	AccountHolder string `gorm:"size:100"`
	AccountNumber string `gorm:"size:50"`
	DocumentID    string `gorm:"size:30"` // RIF / cédula del titular
	Phone         string `gorm:"size:30"` // número afiliado a pago móvil
	IsActive      bool   `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentConfirmation: comprobante que el cliente registra luego de pagar
// por transferencia o pago móvil. Un comprobante por pedido.
type PaymentConfirmation struct {
	ID          uint `gorm:"primaryKey"`
	OrderID     uint `gorm:"not null;uniqueIndex"`
	Order       *Order
	UserID      uint   `gorm:"not null;index"`
	Bank        string `gorm:"size:100;not null"`
	Reference   string `gorm:"size:50;not null"`
	DocumentID  string `gorm:"size:30;not null"`
	PhoneNumber string `gorm:"size:30"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
