package repository

import (
	"go-product-catalog/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogStats summarizes the product collection for the dashboard.
type CatalogStats struct {
	TotalProducts    int64           `json:"total_products"`
	ActiveProducts   int64           `json:"active_products"`
	InactiveProducts int64           `json:"inactive_products"`
	ActiveValue      decimal.Decimal `json:"active_value"` // sum of total over active products
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindActive() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	SetInactive(ids []uuid.UUID) (int64, error)
	Stats() (*CatalogStats, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("name asc").Find(&products).Error
	return products, err
}

func (r *productRepo) FindActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Where("is_active = ?", true).Order("name asc").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "name = ?", name).Error
	return &product, err
}

// Update saves the full record. Commit-time checks and the derived
// field recompute run in the model's BeforeSave hook, inside the same
// transaction as the write.
func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// SetInactive flips is_active off for the whole batch in one statement.
// No derived field depends on is_active, so hooks are not needed here.
func (r *productRepo) SetInactive(ids []uuid.UUID) (int64, error) {
	res := r.db.Model(&model.Product{}).
		Where("id IN ?", ids).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (r *productRepo) Stats() (*CatalogStats, error) {
	var stats CatalogStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("is_active = ?", true).Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}
	stats.InactiveProducts = stats.TotalProducts - stats.ActiveProducts

	if err := r.db.Model(&model.Product{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.ActiveValue).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
