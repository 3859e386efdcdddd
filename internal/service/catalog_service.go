package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"go-product-catalog/internal/model"
	"go-product-catalog/internal/repository"
	"go-product-catalog/internal/ws"
	"go-product-catalog/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateName    = errors.New("product name must be unique")
)

// ProductInput carries caller-supplied field values. Pointer fields
// distinguish "not supplied" from an explicit zero so creation
// defaults only fill real gaps.
type ProductInput struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	UnitPrice   *decimal.Decimal  `json:"unit_price"`
	Quantity    *int              `json:"quantity"`
	TaxRate     *decimal.Decimal  `json:"tax_rate"`
	IsActive    *bool             `json:"is_active"`
	CategoryID  *uuid.UUID        `json:"category_id"`
	Kind        model.ProductKind `json:"kind" validate:"omitempty,product_kind"`
}

// ProductDefaults mirrors what a fresh form would be seeded with.
type ProductDefaults struct {
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Quantity  int               `json:"quantity"`
	TaxRate   decimal.Decimal   `json:"tax_rate"`
	IsActive  bool              `json:"is_active"`
	Kind      model.ProductKind `json:"kind"`
}

// PreviewInput holds not-yet-committed form values for a totals
// preview. Missing fields take the creation defaults.
type PreviewInput struct {
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Quantity  *int             `json:"quantity"`
	TaxRate   *decimal.Decimal `json:"tax_rate"`
}

// TotalsPreview echoes the resolved inputs alongside the derived values.
type TotalsPreview struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

type CatalogService interface {
	CreateProduct(input *ProductInput, actor string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, input *ProductInput, actor string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor string) error
	DuplicateProduct(id uuid.UUID, actor string) (*model.Product, error)
	SetInactive(ids []uuid.UUID, actor string) (int64, error)
	ListProducts() ([]model.Product, error)
	ListActive() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	PreviewTotals(input *PreviewInput) *TotalsPreview
	Defaults() ProductDefaults
	OpenWizard(id uuid.UUID) (*model.WindowAction, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	auditRepo    repository.AuditRepository
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, aRepo repository.AuditRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		auditRepo:    aRepo,
		wsHub:        hub,
	}
}

// Defaults returns the values a new product starts from when the
// caller leaves a field unset.
func (s *catalogService) Defaults() ProductDefaults {
	return ProductDefaults{
		UnitPrice: model.DefaultUnitPrice,
		Quantity:  model.DefaultQuantity,
		TaxRate:   model.DefaultTaxRate,
		IsActive:  true,
		Kind:      model.KindPhysical,
	}
}

func (s *catalogService) CreateProduct(input *ProductInput, actor string) (*model.Product, error) {
	if input.Name == "" {
		return nil, &model.ValidationError{Field: "name", Message: "name is required"}
	}
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		first := errs[0]
		return nil, &model.ValidationError{Field: first.FailedField, Message: fmt.Sprintf("failed on tag '%s'", first.Tag)}
	}

	product := s.buildProduct(input)
	if err := s.applyReference(product, input.CategoryID); err != nil {
		return nil, err
	}

	// Commit-time checks run again in the save hook; failing here just
	// spares a round trip.
	if err := product.CheckValues(); err != nil {
		return nil, err
	}
	product.RecomputeTotals()

	// Uniqueness is enforced by the storage layer's index; this
	// pre-check exists for the friendlier message.
	if existing, _ := s.productRepo.FindByName(product.Name); existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateName
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.audit(product, model.AuditCreated, "", actor)
	s.broadcast("product_created", product, actor)
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, input *ProductInput, actor string) (*model.Product, error) {
	product, err := s.getProduct(id)
	if err != nil {
		return nil, err
	}

	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		first := errs[0]
		return nil, &model.ValidationError{RecordID: id, Field: first.FailedField, Message: fmt.Sprintf("failed on tag '%s'", first.Tag)}
	}

	if input.Name != "" && input.Name != product.Name {
		if existing, _ := s.productRepo.FindByName(input.Name); existing != nil && existing.ID != uuid.Nil {
			return nil, ErrDuplicateName
		}
		product.Name = input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.UnitPrice != nil {
		product.UnitPrice = *input.UnitPrice
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.TaxRate != nil {
		product.TaxRate = *input.TaxRate
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Kind != "" {
		product.Kind = input.Kind
	}
	if input.CategoryID != nil {
		if err := s.applyReference(product, input.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := product.CheckValues(); err != nil {
		return nil, err
	}
	product.RecomputeTotals()

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.audit(product, model.AuditUpdated, "", actor)
	s.broadcast("product_updated", product, actor)
	return product, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, actor string) error {
	product, err := s.getProduct(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(product.ID); err != nil {
		return err
	}

	s.audit(product, model.AuditDeleted, "", actor)
	s.broadcast("product_deleted", product, actor)
	return nil
}

// DuplicateProduct clones the record with the copy marker on the name.
// Derived fields come out of the normal creation path, recomputed from
// the copied inputs.
func (s *catalogService) DuplicateProduct(id uuid.UUID, actor string) (*model.Product, error) {
	product, err := s.getProduct(id)
	if err != nil {
		return nil, err
	}

	copied := product.Copy()
	if existing, _ := s.productRepo.FindByName(copied.Name); existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateName
	}

	copied.RecomputeTotals()
	if err := s.productRepo.Create(copied); err != nil {
		return nil, err
	}

	s.audit(copied, model.AuditDuplicated, fmt.Sprintf("copied from %q", product.Name), actor)
	s.broadcast("product_created", copied, actor)
	return copied, nil
}

// SetInactive archives the whole batch. Records that do not exist are
// simply not counted; the operation itself always succeeds.
func (s *catalogService) SetInactive(ids []uuid.UUID, actor string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	affected, err := s.productRepo.SetInactive(ids)
	if err != nil {
		return 0, err
	}

	entry := &model.AuditLog{
		Action: model.AuditArchived,
		Detail: fmt.Sprintf("%d product(s) set inactive", affected),
		Actor:  actor,
	}
	if err := s.auditRepo.Create(entry); err != nil {
		log.Printf("Warning: failed to write audit entry: %v", err)
	}

	go func() {
		payload := map[string]interface{}{
			"type":     "catalog_update",
			"action":   "products_archived",
			"affected": affected,
			"actor":    actor,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Publish(msg)
	}()

	return affected, nil
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) ListActive() ([]model.Product, error) {
	return s.productRepo.FindActive()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.getProduct(id)
}

// PreviewTotals computes the derived values for uncommitted form
// edits. Nothing is persisted; the result matches what a committed
// recomputation over the same inputs would store.
func (s *catalogService) PreviewTotals(input *PreviewInput) *TotalsPreview {
	preview := &TotalsPreview{
		UnitPrice: model.DefaultUnitPrice,
		Quantity:  model.DefaultQuantity,
		TaxRate:   model.DefaultTaxRate,
	}
	if input.UnitPrice != nil {
		preview.UnitPrice = *input.UnitPrice
	}
	if input.Quantity != nil {
		preview.Quantity = *input.Quantity
	}
	if input.TaxRate != nil {
		preview.TaxRate = *input.TaxRate
	}

	preview.Subtotal, preview.Total = model.ComputeTotals(preview.UnitPrice, preview.Quantity, preview.TaxRate)
	return preview
}

// OpenWizard hands back the navigation descriptor for the host UI.
// Pure boundary call; the record is only checked for existence.
func (s *catalogService) OpenWizard(id uuid.UUID) (*model.WindowAction, error) {
	if _, err := s.getProduct(id); err != nil {
		return nil, err
	}
	action := model.OpenWizardAction()
	return &action, nil
}

func (s *catalogService) buildProduct(input *ProductInput) *model.Product {
	product := &model.Product{
		Name:      input.Name,
		UnitPrice: model.DefaultUnitPrice,
		Quantity:  model.DefaultQuantity,
		TaxRate:   model.DefaultTaxRate,
		IsActive:  true,
		Kind:      model.KindPhysical,
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.UnitPrice != nil {
		product.UnitPrice = *input.UnitPrice
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.TaxRate != nil {
		product.TaxRate = *input.TaxRate
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.Kind != "" {
		product.Kind = input.Kind
	}
	return product
}

func (s *catalogService) applyReference(product *model.Product, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if *categoryID == uuid.Nil {
		product.CategoryID = nil
		product.Category = nil
		return nil
	}
	category, err := s.categoryRepo.FindByID(*categoryID)
	if err != nil {
		return ErrCategoryNotFound
	}
	product.CategoryID = &category.ID
	product.Category = category
	return nil
}

func (s *catalogService) getProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) audit(product *model.Product, action model.AuditAction, detail, actor string) {
	id := product.ID
	entry := &model.AuditLog{
		ProductID:   &id,
		ProductName: product.Name,
		Action:      action,
		Detail:      detail,
		Actor:       actor,
	}
	if err := s.auditRepo.Create(entry); err != nil {
		log.Printf("Warning: failed to write audit entry: %v", err)
	}
}

func (s *catalogService) broadcast(action string, product *model.Product, actor string) {
	go func() {
		payload := map[string]interface{}{
			"type":   "catalog_update",
			"action": action,
			"product": map[string]interface{}{
				"id":        product.ID,
				"name":      product.Name,
				"subtotal":  product.Subtotal,
				"total":     product.Total,
				"is_active": product.IsActive,
			},
			"actor":   actor,
			"message": fmt.Sprintf("%s: %s %q", actor, action, product.Name),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Publish(msg)
	}()
}
