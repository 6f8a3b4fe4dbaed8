package graph

import (
	"context"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
)

// ListItems returns a page of entries of a list owned by the caller.
func (r *Resolver) ListItems(ctx context.Context, listID string, page domain.Page) ([]domain.ListItem, error) {
	caller, err := auth.Authorize(ctx, auth.OpListItems)
	if err != nil {
		return nil, err
	}
	return r.entries.FindAll(ctx, caller.ID, listID, page)
}

// ListItem returns one entry from a list owned by the caller.
func (r *Resolver) ListItem(ctx context.Context, id string) (*domain.ListItem, error) {
	caller, err := auth.Authorize(ctx, auth.OpListItem)
	if err != nil {
		return nil, err
	}
	return r.entries.FindOne(ctx, caller.ID, id)
}

// CreateListItem adds one of the caller's items to one of the caller's lists.
func (r *Resolver) CreateListItem(ctx context.Context, in domain.ListItemInput) (*domain.ListItem, error) {
	caller, err := auth.Authorize(ctx, auth.OpCreateListItem)
	if err != nil {
		return nil, err
	}
	return r.entries.Create(ctx, caller.ID, in)
}

// UpdateListItem changes the quantity or completion of an entry.
func (r *Resolver) UpdateListItem(ctx context.Context, id string, patch domain.ListItemPatch) (*domain.ListItem, error) {
	caller, err := auth.Authorize(ctx, auth.OpUpdateListItem)
	if err != nil {
		return nil, err
	}
	return r.entries.Update(ctx, caller.ID, id, patch)
}

// RemoveListItem deletes an entry from its list.
func (r *Resolver) RemoveListItem(ctx context.Context, id string) (*domain.ListItem, error) {
	caller, err := auth.Authorize(ctx, auth.OpRemoveListItem)
	if err != nil {
		return nil, err
	}
	return r.entries.Remove(ctx, caller.ID, id)
}
