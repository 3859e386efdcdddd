package repository

import (
	"go-product-catalog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *model.AuditLog) error
	FindRecent(limit int) ([]model.AuditLog, error)
	FindByProduct(productID uuid.UUID) ([]model.AuditLog, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditRepo) FindRecent(limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []model.AuditLog
	err := r.db.Order("created_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *auditRepo) FindByProduct(productID uuid.UUID) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.Where("product_id = ?", productID).Order("created_at desc").Find(&entries).Error
	return entries, err
}
