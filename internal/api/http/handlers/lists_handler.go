package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/list-manager/internal/api/dto"
	"github.com/spec-kit/list-manager/internal/graph"
)

// ListsHandler manages the caller's lists.
type ListsHandler struct {
	resolver  *graph.Resolver
	validator *RequestValidator
}

// NewListsHandler constructs handler.
func NewListsHandler(resolver *graph.Resolver, validator *RequestValidator) *ListsHandler {
	return &ListsHandler{resolver: resolver, validator: validator}
}

// List handles GET /lists.
func (h *ListsHandler) List(c *fiber.Ctx) error {
	sel, err := listSelection(c)
	if err != nil {
		return err
	}
	lists, err := h.resolver.Lists(c.UserContext(), sel.Page, sel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": lists})
}

// Get handles GET /lists/:id.
func (h *ListsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	sel, err := listSelection(c)
	if err != nil {
		return err
	}
	list, err := h.resolver.List(c.UserContext(), id, sel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": list})
}

// Create handles POST /lists.
func (h *ListsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateListRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	list, err := h.resolver.CreateList(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": list})
}

// Update handles PATCH /lists/:id.
func (h *ListsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateListRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	list, err := h.resolver.UpdateList(c.UserContext(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": list})
}

// Remove handles DELETE /lists/:id.
func (h *ListsHandler) Remove(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.resolver.RemoveList(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": list})
}

// Entries handles GET /lists/:id/items.
func (h *ListsHandler) Entries(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	page, err := parsePage(c)
	if err != nil {
		return err
	}
	entries, err := h.resolver.ListItems(c.UserContext(), id, page)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entries})
}
