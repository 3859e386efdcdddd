package model

import "github.com/google/uuid"

type AuditAction string

const (
	AuditCreated    AuditAction = "created"
	AuditUpdated    AuditAction = "updated"
	AuditDeleted    AuditAction = "deleted"
	AuditDuplicated AuditAction = "duplicated"
	AuditArchived   AuditAction = "archived"
)

// AuditLog records one lifecycle event on a product. Entries survive
// the product itself, so the product reference is kept loose.
type AuditLog struct {
	BaseModel
	ProductID   *uuid.UUID  `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName string      `gorm:"type:varchar(255)" json:"product_name"`
	Action      AuditAction `gorm:"type:varchar(20);not null" json:"action"`
	Detail      string      `gorm:"type:text" json:"detail"`
	Actor       string      `gorm:"type:varchar(255)" json:"actor"`
}

func (a *AuditLog) TableName() string {
	return "audit_logs"
}
