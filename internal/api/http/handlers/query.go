package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/graph"
	apperrors "github.com/spec-kit/list-manager/pkg/util/errorutil"
)

// pathID returns a route parameter that must be a UUID.
func pathID(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewValidationError("invalid id", map[string]any{name: raw})
	}
	return id.String(), nil
}

// parsePage reads limit, offset and search. Non-numeric values are rejected;
// out-of-range values are clamped by domain.Page.Normalize.
func parsePage(c *fiber.Ctx) (domain.Page, error) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return domain.Page{}, err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Page{Limit: limit, Offset: offset, Search: c.Query("search")}.Normalize(), nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid query parameter", map[string]any{key: raw})
	}
	return v, nil
}

// parseRoles reads a comma-separated roles filter.
func parseRoles(c *fiber.Ctx) ([]domain.Role, error) {
	names := lo.Compact(lo.Map(strings.Split(c.Query("roles"), ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	roles := lo.Map(names, func(s string, _ int) domain.Role { return domain.Role(s) })
	if bad, found := lo.Find(roles, func(r domain.Role) bool { return !r.Valid() }); found {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"roles": string(bad)})
	}
	return lo.Uniq(roles), nil
}

func userSelection(c *fiber.Ctx) (graph.Selection, error) {
	page, err := parsePage(c)
	if err != nil {
		return graph.Selection{}, err
	}
	return graph.ParseUserSelection(c.Query("fields"), page)
}

func listSelection(c *fiber.Ctx) (graph.Selection, error) {
	page, err := parsePage(c)
	if err != nil {
		return graph.Selection{}, err
	}
	return graph.ParseListSelection(c.Query("fields"), page)
}
