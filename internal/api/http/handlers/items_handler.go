package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/list-manager/internal/api/dto"
	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/graph"
)

// ItemsHandler manages the caller's items.
type ItemsHandler struct {
	resolver  *graph.Resolver
	validator *RequestValidator
}

// NewItemsHandler constructs handler.
func NewItemsHandler(resolver *graph.Resolver, validator *RequestValidator) *ItemsHandler {
	return &ItemsHandler{resolver: resolver, validator: validator}
}

// List handles GET /items.
func (h *ItemsHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	items, err := h.resolver.Items(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /items/:id.
func (h *ItemsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.resolver.Item(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": item})
}

// Create handles POST /items.
func (h *ItemsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateItemRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	item, err := h.resolver.CreateItem(c.UserContext(), req.Name, req.QuantityUnits)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": item})
}

// Update handles PATCH /items/:id.
func (h *ItemsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateItemRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	item, err := h.resolver.UpdateItem(c.UserContext(), id, domain.ItemPatch{
		Name:          req.Name,
		QuantityUnits: req.QuantityUnits,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": item})
}

// Remove handles DELETE /items/:id and returns the removed item.
func (h *ItemsHandler) Remove(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.resolver.RemoveItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": item})
}
