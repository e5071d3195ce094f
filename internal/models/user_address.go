package models

import "time"

// UserAddress: dirección de entrega registrada por el cliente.
type UserAddress struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index"`
	Label     string `gorm:"size:100"` // "Casa", "Oficina"...
	Street    string `gorm:"size:255;not null"`
	City      string `gorm:"size:100;not null"`
	State     string `gorm:"size:100"`
	ZipCode   string `gorm:"size:20"`
	Reference string `gorm:"size:255"` // punto de referencia para el repartidor
	CreatedAt time.Time
	UpdatedAt time.Time
}
