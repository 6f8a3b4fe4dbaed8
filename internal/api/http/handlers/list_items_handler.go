package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/list-manager/internal/api/dto"
	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/graph"
)

// ListItemsHandler manages entries placing items on lists.
type ListItemsHandler struct {
	resolver  *graph.Resolver
	validator *RequestValidator
}

// NewListItemsHandler constructs handler.
func NewListItemsHandler(resolver *graph.Resolver, validator *RequestValidator) *ListItemsHandler {
	return &ListItemsHandler{resolver: resolver, validator: validator}
}

// Get handles GET /list-items/:id.
func (h *ListItemsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.resolver.ListItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entry})
}

// Create handles POST /list-items.
func (h *ListItemsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateListItemRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	entry, err := h.resolver.CreateListItem(c.UserContext(), domain.ListItemInput{
		ListID:    req.ListID,
		ItemID:    req.ItemID,
		Quantity:  req.Quantity,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": entry})
}

// Update handles PATCH /list-items/:id.
func (h *ListItemsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateListItemRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	entry, err := h.resolver.UpdateListItem(c.UserContext(), id, domain.ListItemPatch{
		ListID:    req.ListID,
		ItemID:    req.ItemID,
		Quantity:  req.Quantity,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entry})
}

// Remove handles DELETE /list-items/:id.
func (h *ListItemsHandler) Remove(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.resolver.RemoveListItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entry})
}
