package graph

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
)

// UserNode is a user together with the nested fields that were selected.
// Only selected fields are encoded.
type UserNode struct {
	*domain.User
	ItemCount     *int          `json:"itemCount"`
	Items         []domain.Item `json:"items"`
	Lists         []domain.List `json:"lists"`
	ListCount     *int          `json:"listCount"`
	LastUpdatedBy *domain.User  `json:"lastUpdatedBy"`

	selected []Field
}

// Users lists users holding any of roles, or everyone when roles is empty.
func (r *Resolver) Users(ctx context.Context, roles []domain.Role, sel Selection) ([]*UserNode, error) {
	if _, err := auth.Authorize(ctx, auth.OpUsers); err != nil {
		return nil, err
	}
	users, err := r.users.List(ctx, roles)
	if err != nil {
		return nil, err
	}
	return r.resolveUsers(ctx, users, sel)
}

// User loads a single user by id.
func (r *Resolver) User(ctx context.Context, id string, sel Selection) (*UserNode, error) {
	if _, err := auth.Authorize(ctx, auth.OpUser); err != nil {
		return nil, err
	}
	user, err := r.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.resolveUser(ctx, user.Sanitized(), sel)
}

// UpdateUser applies an administrator's patch.
func (r *Resolver) UpdateUser(ctx context.Context, id string, patch domain.UserPatch, sel Selection) (*UserNode, error) {
	admin, err := auth.Authorize(ctx, auth.OpUpdateUser)
	if err != nil {
		return nil, err
	}
	user, err := r.users.Update(ctx, id, patch, admin)
	if err != nil {
		return nil, err
	}
	return r.resolveUser(ctx, user, sel)
}

// BlockUser deactivates a user.
func (r *Resolver) BlockUser(ctx context.Context, id string, sel Selection) (*UserNode, error) {
	admin, err := auth.Authorize(ctx, auth.OpBlockUser)
	if err != nil {
		return nil, err
	}
	user, err := r.users.Block(ctx, id, admin)
	if err != nil {
		return nil, err
	}
	return r.resolveUser(ctx, user, sel)
}

func (r *Resolver) resolveUser(ctx context.Context, user *domain.User, sel Selection) (*UserNode, error) {
	nodes, err := r.resolveUsers(ctx, []*domain.User{user}, sel)
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// resolveUsers fills the selected fields of every user concurrently. Each field
// is authorized on its own; the first failure cancels the rest.
func (r *Resolver) resolveUsers(ctx context.Context, users []*domain.User, sel Selection) ([]*UserNode, error) {
	nodes := make([]*UserNode, len(users))
	for i, u := range users {
		nodes[i] = &UserNode{User: u, selected: sel.Fields}
	}
	if len(sel.Fields) == 0 {
		return nodes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, node := range nodes {
		for _, field := range sel.Fields {
			node, field := node, field
			g.Go(func() error {
				return r.resolveUserField(gctx, node, field, sel.Page)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *Resolver) resolveUserField(ctx context.Context, node *UserNode, field Field, page domain.Page) error {
	if _, err := auth.Authorize(ctx, userFieldOps[field]); err != nil {
		return err
	}

	switch field {
	case UserItemCount:
		n, err := r.items.CountByUser(ctx, node.ID)
		if err != nil {
			return err
		}
		node.ItemCount = &n
	case UserItems:
		items, err := r.items.FindAll(ctx, node.ID, page)
		if err != nil {
			return err
		}
		node.Items = items
	case UserLists:
		lists, err := r.lists.FindAll(ctx, node.ID, page)
		if err != nil {
			return err
		}
		node.Lists = lists
	case UserListCount:
		n, err := r.lists.CountByUser(ctx, node.ID)
		if err != nil {
			return err
		}
		node.ListCount = &n
	case UserLastUpdatedBy:
		if node.LastUpdatedByID == nil {
			return nil
		}
		// Resolved one level deep only.
		by, err := r.users.FindByID(ctx, *node.LastUpdatedByID)
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		node.LastUpdatedBy = by.Sanitized()
	}
	return nil
}
