// Package graph resolves the user → lists → list-items and user → items object
// graph. Every query, mutation and nested field is checked against the caller's
// roles independently before any data is loaded.
package graph

import (
	"context"

	"github.com/spec-kit/list-manager/internal/domain"
)

// AuthFlows are the signup, login and revalidation operations.
type AuthFlows interface {
	Signup(ctx context.Context, in domain.SignupInput) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	Revalidate(ctx context.Context, user *domain.User) (*domain.AuthResult, error)
}

// Users is the user directory.
type Users interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, roles []domain.Role) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch, by *domain.User) (*domain.User, error)
	Block(ctx context.Context, id string, by *domain.User) (*domain.User, error)
}

// Items manages items owned by a user.
type Items interface {
	Create(ctx context.Context, ownerID, name string, quantityUnits *string) (*domain.Item, error)
	FindAll(ctx context.Context, ownerID string, page domain.Page) ([]domain.Item, error)
	FindOne(ctx context.Context, ownerID, id string) (*domain.Item, error)
	Update(ctx context.Context, ownerID, id string, patch domain.ItemPatch) (*domain.Item, error)
	Remove(ctx context.Context, ownerID, id string) (*domain.Item, error)
	CountByUser(ctx context.Context, ownerID string) (int, error)
}

// Lists manages lists owned by a user.
type Lists interface {
	Create(ctx context.Context, ownerID, name string) (*domain.List, error)
	FindAll(ctx context.Context, ownerID string, page domain.Page) ([]domain.List, error)
	FindOne(ctx context.Context, ownerID, id string) (*domain.List, error)
	Update(ctx context.Context, ownerID, id string, name *string) (*domain.List, error)
	Remove(ctx context.Context, ownerID, id string) (*domain.List, error)
	CountByUser(ctx context.Context, ownerID string) (int, error)
}

// ListItems manages entries on lists.
type ListItems interface {
	Create(ctx context.Context, ownerID string, in domain.ListItemInput) (*domain.ListItem, error)
	FindAll(ctx context.Context, ownerID, listID string, page domain.Page) ([]domain.ListItem, error)
	ByList(ctx context.Context, list *domain.List, page domain.Page) ([]domain.ListItem, error)
	CountByList(ctx context.Context, list *domain.List) (int, error)
	FindOne(ctx context.Context, ownerID, id string) (*domain.ListItem, error)
	Update(ctx context.Context, ownerID, id string, patch domain.ListItemPatch) (*domain.ListItem, error)
	Remove(ctx context.Context, ownerID, id string) (*domain.ListItem, error)
}

const defaultFieldConcurrency = 8

// Resolver is the root of every graph operation.
type Resolver struct {
	auth        AuthFlows
	users       Users
	items       Items
	lists       Lists
	entries     ListItems
	concurrency int
}

// Dependencies groups the collaborators of a Resolver.
type Dependencies struct {
	Auth      AuthFlows
	Users     Users
	Items     Items
	Lists     Lists
	ListItems ListItems
	// FieldConcurrency bounds parallel nested field resolution.
	FieldConcurrency int
}

// NewResolver builds a resolver.
func NewResolver(deps Dependencies) *Resolver {
	concurrency := deps.FieldConcurrency
	if concurrency <= 0 {
		concurrency = defaultFieldConcurrency
	}
	return &Resolver{
		auth:        deps.Auth,
		users:       deps.Users,
		items:       deps.Items,
		lists:       deps.Lists,
		entries:     deps.ListItems,
		concurrency: concurrency,
	}
}
