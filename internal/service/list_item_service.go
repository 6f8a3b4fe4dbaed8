package service

import (
	"context"
	"fmt"

	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/repository"
)

// ListItemService manages entries on the caller's lists.
type ListItemService struct {
	entries repository.ListItemRepository
	lists   repository.ListRepository
	items   repository.ItemRepository
}

// NewListItemService builds the service.
func NewListItemService(entries repository.ListItemRepository, lists repository.ListRepository, items repository.ItemRepository) *ListItemService {
	return &ListItemService{entries: entries, lists: lists, items: items}
}

// Create places an owned item on an owned list. An item appears at most once per list.
func (s *ListItemService) Create(ctx context.Context, ownerID string, in domain.ListItemInput) (*domain.ListItem, error) {
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
	}
	item, err := s.ensureOwned(ctx, ownerID, in.ListID, in.ItemID)
	if err != nil {
		return nil, err
	}
	entry := &domain.ListItem{
		Quantity:  in.Quantity,
		Completed: in.Completed,
		ListID:    in.ListID,
		ItemID:    in.ItemID,
		Item:      item,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindAll pages the entries of an owned list; search matches the item name.
func (s *ListItemService) FindAll(ctx context.Context, ownerID, listID string, page domain.Page) ([]domain.ListItem, error) {
	if _, err := s.lists.GetByID(ctx, ownerID, listID); err != nil {
		return nil, err
	}
	return s.entries.ListByList(ctx, listID, page.Normalize())
}

// ByList pages the entries of a list the caller already resolved.
func (s *ListItemService) ByList(ctx context.Context, list *domain.List, page domain.Page) ([]domain.ListItem, error) {
	return s.entries.ListByList(ctx, list.ID, page.Normalize())
}

// CountByList counts the entries of a list the caller already resolved.
func (s *ListItemService) CountByList(ctx context.Context, list *domain.List) (int, error) {
	return s.entries.CountByList(ctx, list.ID)
}

// FindOne returns an entry whose list is owned by ownerID.
func (s *ListItemService) FindOne(ctx context.Context, ownerID, id string) (*domain.ListItem, error) {
	return s.entries.GetByID(ctx, ownerID, id)
}

// Update changes quantity or completion, or moves the entry to another owned list or item.
func (s *ListItemService) Update(ctx context.Context, ownerID, id string, patch domain.ListItemPatch) (*domain.ListItem, error) {
	entry, err := s.entries.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	listID, itemID := entry.ListID, entry.ItemID
	if patch.ListID != nil {
		listID = *patch.ListID
	}
	if patch.ItemID != nil {
		itemID = *patch.ItemID
	}
	if listID != entry.ListID || itemID != entry.ItemID {
		item, err := s.ensureOwned(ctx, ownerID, listID, itemID)
		if err != nil {
			return nil, err
		}
		entry.Item = item
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrValidation)
		}
		entry.Quantity = *patch.Quantity
	}
	if patch.Completed != nil {
		entry.Completed = *patch.Completed
	}
	entry.ListID, entry.ItemID = listID, itemID

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Remove deletes an entry from an owned list and returns it as it was.
func (s *ListItemService) Remove(ctx context.Context, ownerID, id string) (*domain.ListItem, error) {
	entry, err := s.entries.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Delete(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ListItemService) ensureOwned(ctx context.Context, ownerID, listID, itemID string) (*domain.Item, error) {
	if _, err := s.lists.GetByID(ctx, ownerID, listID); err != nil {
		return nil, fmt.Errorf("list %s: %w", listID, err)
	}
	item, err := s.items.GetByID(ctx, ownerID, itemID)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", itemID, err)
	}
	return item, nil
}
