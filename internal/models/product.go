package models

import "time"

type ProductCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID                   uint   `gorm:"primaryKey"`
	Name                 string `gorm:"size:150;not null;index"`
	Description          string `gorm:"size:500"`
	CategoryID           *uint
	Category             *ProductCategory
	Laboratory           string `gorm:"size:100"` // laboratorio fabricante
	RequiresPrescription bool   `gorm:"not null;default:false"`
	ImageURL             string `gorm:"size:255"`
	IsActive             bool   `gorm:"default:true"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Presentations []ProductPresentation
}

// ProductPresentation: presentación vendible de un producto
// (ej: "Caja 30 tabletas 500mg"). El carrito y los pedidos referencian
// presentaciones, no productos.
type ProductPresentation struct {
	ID              uint `gorm:"primaryKey"`
	ProductID       uint `gorm:"not null;index"`
	Product         *Product
	Name            string  `gorm:"size:150;not null"`
	Price           float64 `gorm:"not null"`
	DiscountPercent float64 `gorm:"not null;default:0"` // descuento propio del artículo
	Stock           int     `gorm:"not null;default:0"`
	IsActive        bool    `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
