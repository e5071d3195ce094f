package models

import "time"

// Branch: sucursal (farmacia física) donde el cliente puede retirar su pedido.
type Branch struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null;unique"`
	Address   string  `gorm:"size:255"`
	City      string  `gorm:"size:100"`
	Phone     string  `gorm:"size:50"` // Opcional
	Latitude  float64 `gorm:"default:0"`
	Longitude float64 `gorm:"default:0"`
	Schedule  string  `gorm:"size:100"` // horario de atención, texto libre
	IsActive  bool    `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Users []User
}
