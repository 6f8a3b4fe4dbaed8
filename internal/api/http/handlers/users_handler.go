package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/spec-kit/list-manager/internal/api/dto"
	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/graph"
)

// UsersHandler exposes the admin user directory.
type UsersHandler struct {
	resolver  *graph.Resolver
	validator *RequestValidator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(resolver *graph.Resolver, validator *RequestValidator) *UsersHandler {
	return &UsersHandler{resolver: resolver, validator: validator}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	roles, err := parseRoles(c)
	if err != nil {
		return err
	}
	sel, err := userSelection(c)
	if err != nil {
		return err
	}
	users, err := h.resolver.Users(c.UserContext(), roles, sel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	sel, err := userSelection(c)
	if err != nil {
		return err
	}
	user, err := h.resolver.User(c.UserContext(), id, sel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	sel, err := userSelection(c)
	if err != nil {
		return err
	}
	patch := domain.UserPatch{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
	}
	if req.Roles != nil {
		patch.Roles = lo.Map(req.Roles, func(r string, _ int) domain.Role { return domain.Role(r) })
	}
	user, err := h.resolver.UpdateUser(c.UserContext(), id, patch, sel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Block handles POST /users/:id/block.
func (h *UsersHandler) Block(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	sel, err := userSelection(c)
	if err != nil {
		return err
	}
	user, err := h.resolver.BlockUser(c.UserContext(), id, sel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}
