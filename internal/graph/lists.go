package graph

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
)

// ListNode is a list together with the nested fields that were selected.
// Only selected fields are encoded.
type ListNode struct {
	*domain.List
	Items     []domain.ListItem `json:"items"`
	ItemCount *int              `json:"itemCount"`

	selected []Field
}

// Lists returns the caller's lists with the selected nested fields.
func (r *Resolver) Lists(ctx context.Context, page domain.Page, sel Selection) ([]*ListNode, error) {
	caller, err := auth.Authorize(ctx, auth.OpLists)
	if err != nil {
		return nil, err
	}
	lists, err := r.lists.FindAll(ctx, caller.ID, page)
	if err != nil {
		return nil, err
	}
	return r.resolveLists(ctx, lists, sel)
}

// List returns one of the caller's lists with the selected nested fields.
func (r *Resolver) List(ctx context.Context, id string, sel Selection) (*ListNode, error) {
	caller, err := auth.Authorize(ctx, auth.OpList)
	if err != nil {
		return nil, err
	}
	list, err := r.lists.FindOne(ctx, caller.ID, id)
	if err != nil {
		return nil, err
	}
	nodes, err := r.resolveLists(ctx, []domain.List{*list}, sel)
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

// CreateList creates a list owned by the caller.
func (r *Resolver) CreateList(ctx context.Context, name string) (*domain.List, error) {
	caller, err := auth.Authorize(ctx, auth.OpCreateList)
	if err != nil {
		return nil, err
	}
	return r.lists.Create(ctx, caller.ID, name)
}

// UpdateList renames one of the caller's lists.
func (r *Resolver) UpdateList(ctx context.Context, id string, name *string) (*domain.List, error) {
	caller, err := auth.Authorize(ctx, auth.OpUpdateList)
	if err != nil {
		return nil, err
	}
	return r.lists.Update(ctx, caller.ID, id, name)
}

// RemoveList deletes one of the caller's lists and its entries.
func (r *Resolver) RemoveList(ctx context.Context, id string) (*domain.List, error) {
	caller, err := auth.Authorize(ctx, auth.OpRemoveList)
	if err != nil {
		return nil, err
	}
	return r.lists.Remove(ctx, caller.ID, id)
}

func (r *Resolver) resolveLists(ctx context.Context, lists []domain.List, sel Selection) ([]*ListNode, error) {
	nodes := make([]*ListNode, len(lists))
	for i := range lists {
		nodes[i] = &ListNode{List: &lists[i], selected: sel.Fields}
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
				return r.resolveListField(gctx, node, field, sel.Page)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *Resolver) resolveListField(ctx context.Context, node *ListNode, field Field, page domain.Page) error {
	if _, err := auth.Authorize(ctx, listFieldOps[field]); err != nil {
		return err
	}

	switch field {
	case ListItemsField:
		entries, err := r.entries.ByList(ctx, node.List, page)
		if err != nil {
			return err
		}
		node.Items = entries
	case ListItemCount:
		n, err := r.entries.CountByList(ctx, node.List)
		if err != nil {
			return err
		}
		node.ItemCount = &n
	}
	return nil
}
