package models

import "time"

// CartItem: línea del carrito del cliente. Se vacía cuando su pedido
// llega al estado completed.
type CartItem struct {
	ID                    uint `gorm:"primaryKey"`
	UserID                uint `gorm:"not null;index:idx_cart_user_presentation,unique"`
	ProductPresentationID uint `gorm:"not null;index:idx_cart_user_presentation,unique"`
	ProductPresentation   *ProductPresentation
	Quantity              int `gorm:"not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
