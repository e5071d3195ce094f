package models

import "time"

type Coupon struct {
	ID              uint    `gorm:"primaryKey"`
	Code            string  `gorm:"size:50;uniqueIndex;not null"`
	DiscountPercent float64 `gorm:"not null"` // porcentaje sobre el subtotal ya rebajado
	MinPurchase     float64 `gorm:"not null;default:0"`
	ExpirationDate  time.Time
	IsActive        bool `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c *Coupon) Expired(now time.Time) bool {
	return !c.ExpirationDate.IsZero() && now.After(c.ExpirationDate)
}
