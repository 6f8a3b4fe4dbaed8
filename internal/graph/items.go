package graph

import (
	"context"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
)

// Items returns a page of the caller's items.
func (r *Resolver) Items(ctx context.Context, page domain.Page) ([]domain.Item, error) {
	caller, err := auth.Authorize(ctx, auth.OpItems)
	if err != nil {
		return nil, err
	}
	return r.items.FindAll(ctx, caller.ID, page)
}

// Item returns one of the caller's items.
func (r *Resolver) Item(ctx context.Context, id string) (*domain.Item, error) {
	caller, err := auth.Authorize(ctx, auth.OpItem)
	if err != nil {
		return nil, err
	}
	return r.items.FindOne(ctx, caller.ID, id)
}

// CreateItem creates an item owned by the caller.
func (r *Resolver) CreateItem(ctx context.Context, name string, quantityUnits *string) (*domain.Item, error) {
	caller, err := auth.Authorize(ctx, auth.OpCreateItem)
	if err != nil {
		return nil, err
	}
	return r.items.Create(ctx, caller.ID, name, quantityUnits)
}

// UpdateItem applies a partial update to one of the caller's items.
func (r *Resolver) UpdateItem(ctx context.Context, id string, patch domain.ItemPatch) (*domain.Item, error) {
	caller, err := auth.Authorize(ctx, auth.OpUpdateItem)
	if err != nil {
		return nil, err
	}
	return r.items.Update(ctx, caller.ID, id, patch)
}

// RemoveItem deletes one of the caller's items.
func (r *Resolver) RemoveItem(ctx context.Context, id string) (*domain.Item, error) {
	caller, err := auth.Authorize(ctx, auth.OpRemoveItem)
	if err != nil {
		return nil, err
	}
	return r.items.Remove(ctx, caller.ID, id)
}
