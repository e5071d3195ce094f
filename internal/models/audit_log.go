package models

import "time"

type AuditAction string

const (
	AuditActionCreate       AuditAction = "create"
	AuditActionUpdate       AuditAction = "update"
	AuditActionDelete       AuditAction = "delete"
	AuditActionStatusChange AuditAction = "status_change"
)

// AuditLog: rastro de las acciones administrativas (cambios de estado de
// pedidos, catálogo, cupones). Solo lectura desde la API.
type AuditLog struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	BranchID    *uint       `gorm:"index" json:"branch_id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	UserName    string      `gorm:"size:100" json:"user_name"`
	EntityType  string      `gorm:"size:50;not null;index" json:"entity_type"`
	EntityID    uint        `gorm:"not null" json:"entity_id"`
	Action      AuditAction `gorm:"size:20;not null" json:"action"`
	Description string      `gorm:"size:500" json:"description"`
	BeforeData  string      `gorm:"type:jsonb;default:'null'" json:"before_data"`
	AfterData   string      `gorm:"type:jsonb;default:'null'" json:"after_data"`
	CreatedAt   time.Time   `json:"created_at"`
}
