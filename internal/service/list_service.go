package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/repository"
)

// ListService manages the caller's lists.
type ListService struct {
	lists repository.ListRepository
}

// NewListService builds the service.
func NewListService(lists repository.ListRepository) *ListService {
	return &ListService{lists: lists}
}

// Create stores a new list owned by ownerID.
func (s *ListService) Create(ctx context.Context, ownerID, name string) (*domain.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	list := &domain.List{Name: name, UserID: ownerID}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	return list, nil
}

// FindAll pages the owner's lists, optionally filtered by name.
func (s *ListService) FindAll(ctx context.Context, ownerID string, page domain.Page) ([]domain.List, error) {
	return s.lists.ListByUser(ctx, ownerID, page.Normalize())
}

// FindOne returns a list owned by ownerID. Lists of other users are not found.
func (s *ListService) FindOne(ctx context.Context, ownerID, id string) (*domain.List, error) {
	return s.lists.GetByID(ctx, ownerID, id)
}

// Update renames an owned list. A nil name leaves it unchanged.
func (s *ListService) Update(ctx context.Context, ownerID, id string, name *string) (*domain.List, error) {
	list, err := s.lists.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		list.Name = trimmed
	}
	if err := s.lists.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Remove deletes an owned list with its entries and returns the list as it was.
func (s *ListService) Remove(ctx context.Context, ownerID, id string) (*domain.List, error) {
	list, err := s.lists.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.lists.Delete(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return list, nil
}

// CountByUser counts the lists owned by ownerID.
func (s *ListService) CountByUser(ctx context.Context, ownerID string) (int, error) {
	return s.lists.CountByUser(ctx, ownerID)
}
