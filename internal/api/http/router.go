package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/list-manager/internal/api/http/handlers"
	"github.com/spec-kit/list-manager/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Items          *handlers.ItemsHandler
	Lists          *handlers.ListsHandler
	ListItems      *handlers.ListItemsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        nethttp.Handler
}

// RegisterRoutes wires HTTP routes. Everything except health, metrics, signup
// and login passes through the credential guard; each route is then gated by
// the role rule of its operation.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/revalidate", cfg.AuthMiddleware.Handle, auth.RequireOperation(auth.OpRevalidate), cfg.Auth.Revalidate)

	guard := cfg.AuthMiddleware.Handle

	users := app.Group("/users", guard)
	users.Get("/", auth.RequireOperation(auth.OpUsers), cfg.Users.List)
	users.Get("/:id", auth.RequireOperation(auth.OpUser), cfg.Users.Get)
	users.Patch("/:id", auth.RequireOperation(auth.OpUpdateUser), cfg.Users.Update)
	users.Post("/:id/block", auth.RequireOperation(auth.OpBlockUser), cfg.Users.Block)

	items := app.Group("/items", guard)
	items.Get("/", auth.RequireOperation(auth.OpItems), cfg.Items.List)
	items.Post("/", auth.RequireOperation(auth.OpCreateItem), cfg.Items.Create)
	items.Get("/:id", auth.RequireOperation(auth.OpItem), cfg.Items.Get)
	items.Patch("/:id", auth.RequireOperation(auth.OpUpdateItem), cfg.Items.Update)
	items.Delete("/:id", auth.RequireOperation(auth.OpRemoveItem), cfg.Items.Remove)

	lists := app.Group("/lists", guard)
	lists.Get("/", auth.RequireOperation(auth.OpLists), cfg.Lists.List)
	lists.Post("/", auth.RequireOperation(auth.OpCreateList), cfg.Lists.Create)
	lists.Get("/:id", auth.RequireOperation(auth.OpList), cfg.Lists.Get)
	lists.Patch("/:id", auth.RequireOperation(auth.OpUpdateList), cfg.Lists.Update)
	lists.Delete("/:id", auth.RequireOperation(auth.OpRemoveList), cfg.Lists.Remove)
	lists.Get("/:id/items", auth.RequireOperation(auth.OpListItems), cfg.Lists.Entries)

	listItems := app.Group("/list-items", guard)
	listItems.Post("/", auth.RequireOperation(auth.OpCreateListItem), cfg.ListItems.Create)
	listItems.Get("/:id", auth.RequireOperation(auth.OpListItem), cfg.ListItems.Get)
	listItems.Patch("/:id", auth.RequireOperation(auth.OpUpdateListItem), cfg.ListItems.Update)
	listItems.Delete("/:id", auth.RequireOperation(auth.OpRemoveListItem), cfg.ListItems.Remove)
}
