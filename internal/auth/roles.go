package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/spec-kit/list-manager/internal/domain"
)

// Operation names a query, mutation or nested field that is access checked.
type Operation string

const (
	OpSignup     Operation = "signup"
	OpLogin      Operation = "login"
	OpRevalidate Operation = "revalidate"

	OpUsers      Operation = "users"
	OpUser       Operation = "user"
	OpUpdateUser Operation = "updateUser"
	OpBlockUser  Operation = "blockUser"

	OpUserItemCount     Operation = "User.itemCount"
	OpUserItems         Operation = "User.items"
	OpUserLists         Operation = "User.lists"
	OpUserListCount     Operation = "User.listCount"
	OpUserLastUpdatedBy Operation = "User.lastUpdatedBy"

	OpItems      Operation = "items"
	OpItem       Operation = "item"
	OpCreateItem Operation = "createItem"
	OpUpdateItem Operation = "updateItem"
	OpRemoveItem Operation = "removeItem"

	OpLists      Operation = "lists"
	OpList       Operation = "list"
	OpCreateList Operation = "createList"
	OpUpdateList Operation = "updateList"
	OpRemoveList Operation = "removeList"

	OpListItemsField Operation = "List.items"
	OpListItemCount  Operation = "List.itemCount"

	OpListItems      Operation = "listItems"
	OpListItem       Operation = "listItem"
	OpCreateListItem Operation = "createListItem"
	OpUpdateListItem Operation = "updateListItem"
	OpRemoveListItem Operation = "removeListItem"
)

type rule struct {
	public bool
	roles  []domain.Role
}

var (
	anyUser   = rule{}
	adminOnly = rule{roles: []domain.Role{domain.RoleAdmin}}
)

// operationRules maps every access point to its required roles.
// An empty role set admits any authenticated user.
var operationRules = map[Operation]rule{
	OpSignup:     {public: true},
	OpLogin:      {public: true},
	OpRevalidate: anyUser,

	OpUsers:      {roles: []domain.Role{domain.RoleAdmin, domain.RoleSuperUser}},
	OpUser:       adminOnly,
	OpUpdateUser: adminOnly,
	OpBlockUser:  adminOnly,

	OpUserItemCount:     adminOnly,
	OpUserItems:         adminOnly,
	OpUserLists:         adminOnly,
	OpUserListCount:     adminOnly,
	OpUserLastUpdatedBy: anyUser,

	OpItems:      anyUser,
	OpItem:       anyUser,
	OpCreateItem: anyUser,
	OpUpdateItem: anyUser,
	OpRemoveItem: anyUser,

	OpLists:      anyUser,
	OpList:       anyUser,
	OpCreateList: anyUser,
	OpUpdateList: anyUser,
	OpRemoveList: anyUser,

	OpListItemsField: anyUser,
	OpListItemCount:  anyUser,

	OpListItems:      anyUser,
	OpListItem:       anyUser,
	OpCreateListItem: anyUser,
	OpUpdateListItem: anyUser,
	OpRemoveListItem: anyUser,
}

// RequiredRoles returns the roles declared for op and whether op is known.
func RequiredRoles(op Operation) ([]domain.Role, bool) {
	r, ok := operationRules[op]
	if !ok {
		return nil, false
	}
	return append([]domain.Role(nil), r.roles...), true
}

// IsPublic reports whether op is reachable without a credential.
func IsPublic(op Operation) bool {
	return operationRules[op].public
}

// Check returns the user in ctx when it holds at least one of required.
// An empty requirement admits any resolved user.
func Check(ctx context.Context, required ...domain.Role) (*domain.User, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrMissingCredential
	}
	if len(required) == 0 {
		return user, nil
	}
	if !lo.Some(user.Roles, required) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

// Authorize checks the caller in ctx against the rule declared for op.
// Operations missing from the table are denied.
func Authorize(ctx context.Context, op Operation) (*domain.User, error) {
	r, ok := operationRules[op]
	if !ok {
		return nil, domain.ErrForbidden
	}
	if r.public {
		user, _ := UserFromContext(ctx)
		return user, nil
	}
	return Check(ctx, r.roles...)
}

// RequireOperation gates a route behind the rule declared for op.
func RequireOperation(op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := Authorize(c.UserContext(), op); err != nil {
			return err
		}
		return c.Next()
	}
}
