package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductKind is a closed enumeration of product types.
type ProductKind string

const (
	KindPhysical ProductKind = "physical"
	KindDigital  ProductKind = "digital"
)

// Kinds returns every selectable product kind, in display order.
func Kinds() []ProductKind {
	return []ProductKind{KindPhysical, KindDigital}
}

func (k ProductKind) Valid() bool {
	return k == KindPhysical || k == KindDigital
}

// Label returns the human-readable name for the kind.
func (k ProductKind) Label() string {
	switch k {
	case KindPhysical:
		return "Physical"
	case KindDigital:
		return "Digital"
	default:
		return string(k)
	}
}

// Creation defaults applied for any field the caller does not supply.
var (
	DefaultUnitPrice = decimal.NewFromFloat(10.0)
	DefaultTaxRate   = decimal.NewFromInt(21)
)

const DefaultQuantity = 1

// CopySuffix is appended to the name of a duplicated product.
const CopySuffix = " (Copy)"

// Product carries no column-level defaults: GORM drops zero-valued
// fields with a default tag from the INSERT, which would overwrite an
// explicit quantity=0 or is_active=false. Defaults for absent fields
// are applied by the service before the record reaches the store.
type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(6,2)" json:"tax_rate"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(14,2)" json:"subtotal"`
	Total       decimal.Decimal `gorm:"type:decimal(14,4)" json:"total"`
	IsActive    bool            `json:"is_active"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	Kind        ProductKind     `gorm:"type:varchar(20)" json:"kind" validate:"omitempty,product_kind"`
}

// ValidationError reports a field value that must not be committed.
type ValidationError struct {
	RecordID uuid.UUID
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.RecordID == uuid.Nil {
		return fmt.Sprintf("product: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("product %s: %s: %s", e.RecordID, e.Field, e.Message)
}

// ComputeTotals derives subtotal and total from the given inputs.
// Subtotal is resolved before total so a price or quantity change
// flows through both in one pass.
func ComputeTotals(unitPrice decimal.Decimal, quantity int, taxRate decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	total = subtotal.Mul(decimal.NewFromInt(1).Add(taxRate.Div(decimal.NewFromInt(100))))
	return subtotal, total
}

// RecomputeTotals rewrites the derived fields from their current
// dependencies. Safe to call any number of times.
func (p *Product) RecomputeTotals() {
	p.Subtotal, p.Total = ComputeTotals(p.UnitPrice, p.Quantity, p.TaxRate)
}

// CheckValues enforces the commit-time constraints on price and quantity.
func (p *Product) CheckValues() error {
	if p.UnitPrice.IsNegative() {
		return &ValidationError{RecordID: p.ID, Field: "unit_price", Message: "unit price cannot be negative"}
	}
	if p.Quantity < 0 {
		return &ValidationError{RecordID: p.ID, Field: "quantity", Message: "quantity cannot be negative"}
	}
	return nil
}

// BeforeSave runs inside the transaction that persists the product:
// a failed check aborts the whole commit, and the derived fields are
// always recomputed before they hit the database.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if err := p.CheckValues(); err != nil {
		return err
	}
	p.RecomputeTotals()
	return nil
}

// Copy returns an unsaved duplicate carrying the stored fields over
// and the copy marker on the name. Derived fields are left for the
// save hooks to recompute.
func (p *Product) Copy() *Product {
	return &Product{
		Name:        p.Name + CopySuffix,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		Quantity:    p.Quantity,
		TaxRate:     p.TaxRate,
		IsActive:    p.IsActive,
		CategoryID:  p.CategoryID,
		Kind:        p.Kind,
	}
}

func (p *Product) TableName() string {
	return "products"
}
