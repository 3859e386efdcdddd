package handler

import (
	"errors"

	"go-product-catalog/internal/model"
	"go-product-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// Helper to get actor identity from JWT context (set by auth middleware)
func getActor(c *fiber.Ctx) string {
	email := c.Locals("user_email")
	if email == nil {
		return "system"
	}
	return email.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// serviceError maps service failures onto HTTP statuses. Validation
// failures get their own status so form clients can tell them apart
// from malformed requests.
func serviceError(c *fiber.Ctx, err error) error {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrCategoryNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateName):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
}

// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GET /api/v1/products/active
func (h *ProductHandler) GetActiveProducts(c *fiber.Ctx) error {
	products, err := h.service.ListActive()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

// GET /api/v1/products/defaults
func (h *ProductHandler) GetDefaults(c *fiber.Ctx) error {
	return c.JSON(h.service.Defaults())
}

// GET /api/v1/products/kinds
func (h *ProductHandler) GetKinds(c *fiber.Ctx) error {
	kinds := model.Kinds()
	out := make([]fiber.Map, len(kinds))
	for i, k := range kinds {
		out[i] = fiber.Map{"value": k, "label": k.Label()}
	}
	return c.JSON(out)
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(product)
}

// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&input, getActor(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &input, getActor(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id, getActor(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// POST /api/v1/products/:id/duplicate
func (h *ProductHandler) DuplicateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.DuplicateProduct(id, getActor(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product duplicated", "data": product})
}

// SetInactiveRequest carries the batch of record IDs to archive.
type SetInactiveRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// POST /api/v1/products/set-inactive
func (h *ProductHandler) SetInactive(c *fiber.Ctx) error {
	var req SetInactiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	affected, err := h.service.SetInactive(req.IDs, getActor(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "affected": affected})
}

// POST /api/v1/products/preview
func (h *ProductHandler) PreviewTotals(c *fiber.Ctx) error {
	var input service.PreviewInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	return c.JSON(h.service.PreviewTotals(&input))
}

// POST /api/v1/products/:id/open-wizard
func (h *ProductHandler) OpenWizard(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	action, err := h.service.OpenWizard(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(action)
}
