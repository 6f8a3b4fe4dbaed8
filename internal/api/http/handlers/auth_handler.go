package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/list-manager/internal/api/dto"
	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/graph"
)

// AuthHandler exposes signup, login and revalidate.
type AuthHandler struct {
	resolver  *graph.Resolver
	validator *RequestValidator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(resolver *graph.Resolver, validator *RequestValidator) *AuthHandler {
	return &AuthHandler{resolver: resolver, validator: validator}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	payload, err := h.resolver.Signup(c.UserContext(), domain.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": payload})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	payload, err := h.resolver.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payload})
}

// Revalidate handles GET /auth/revalidate.
func (h *AuthHandler) Revalidate(c *fiber.Ctx) error {
	sel, err := userSelection(c)
	if err != nil {
		return err
	}
	payload, err := h.resolver.Revalidate(c.UserContext(), sel)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": payload})
}
