package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/repository"
)

// ItemService manages the caller's items.
type ItemService struct {
	items repository.ItemRepository
}

// NewItemService builds the service.
func NewItemService(items repository.ItemRepository) *ItemService {
	return &ItemService{items: items}
}

// Create stores a new item owned by ownerID.
func (s *ItemService) Create(ctx context.Context, ownerID, name string, quantityUnits *string) (*domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	item := &domain.Item{Name: name, QuantityUnits: trimOptional(quantityUnits), UserID: ownerID}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// FindAll pages the owner's items, optionally filtered by name.
func (s *ItemService) FindAll(ctx context.Context, ownerID string, page domain.Page) ([]domain.Item, error) {
	return s.items.ListByUser(ctx, ownerID, page.Normalize())
}

// FindOne returns an item owned by ownerID. Items of other users are not found.
func (s *ItemService) FindOne(ctx context.Context, ownerID, id string) (*domain.Item, error) {
	return s.items.GetByID(ctx, ownerID, id)
}

// Update applies patch to an owned item.
func (s *ItemService) Update(ctx context.Context, ownerID, id string, patch domain.ItemPatch) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		item.Name = name
	}
	if patch.QuantityUnits != nil {
		item.QuantityUnits = trimOptional(patch.QuantityUnits)
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes an owned item and returns it as it was.
func (s *ItemService) Remove(ctx context.Context, ownerID, id string) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.items.Delete(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return item, nil
}

// CountByUser counts the items owned by ownerID.
func (s *ItemService) CountByUser(ctx context.Context, ownerID string) (int, error) {
	return s.items.CountByUser(ctx, ownerID)
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
