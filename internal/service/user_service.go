package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/events"
	"github.com/spec-kit/list-manager/internal/repository"
)

// UserService is the user directory: lookups, signup persistence and admin changes.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost, logger: logger}
}

// Create hashes the password and stores an active user with the default roles.
func (s *UserService) Create(ctx context.Context, in domain.SignupInput) (*domain.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := domain.NormalizeEmail(in.Email)
	if fullName == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: fullName, email and password are required", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Roles:        domain.DefaultRoles(),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID returns the stored user including its password hash.
func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// FindByEmail returns the stored user including its password hash.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
}

// List returns sanitized users holding any of roles; empty roles returns everyone.
func (s *UserService) List(ctx context.Context, roles []domain.Role) ([]*domain.User, error) {
	roles, err := cleanRoles(roles, true)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListByRoles(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return lo.Map(users, func(u domain.User, _ int) *domain.User { return u.Sanitized() }), nil
}

// Update applies an administrator's patch and records them as last updater.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch, by *domain.User) (*domain.User, error) {
	if by == nil {
		return nil, domain.ErrMissingCredential
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var changed []string
	if patch.FullName != nil {
		name := strings.TrimSpace(*patch.FullName)
		if name == "" {
			return nil, fmt.Errorf("%w: fullName must not be empty", domain.ErrValidation)
		}
		user.FullName = name
		changed = append(changed, "fullName")
	}
	if patch.Email != nil {
		email := domain.NormalizeEmail(*patch.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
		}
		user.Email = email
		changed = append(changed, "email")
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
		}
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
		changed = append(changed, "password")
	}
	if patch.Roles != nil {
		roles, err := cleanRoles(patch.Roles, false)
		if err != nil {
			return nil, err
		}
		user.Roles = roles
		changed = append(changed, "roles")
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
		changed = append(changed, "isActive")
	}

	user.LastUpdatedByID = lo.ToPtr(by.ID)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.EventUserUpdated, user.ID, lo.ToPtr(by.ID), events.UserUpdatedPayload{Fields: changed}))
	return user.Sanitized(), nil
}

// Block deactivates a user. Their outstanding credentials stop resolving immediately.
func (s *UserService) Block(ctx context.Context, id string, by *domain.User) (*domain.User, error) {
	if by == nil {
		return nil, domain.ErrMissingCredential
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = false
	user.LastUpdatedByID = lo.ToPtr(by.ID)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.EventUserBlocked, user.ID, lo.ToPtr(by.ID), nil))
	return user.Sanitized(), nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// cleanRoles validates and de-duplicates roles. Only filters may be empty.
func cleanRoles(roles []domain.Role, allowEmpty bool) ([]domain.Role, error) {
	if invalid, ok := lo.Find(roles, func(r domain.Role) bool { return !r.Valid() }); ok {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, invalid)
	}
	roles = lo.Uniq(roles)
	if len(roles) == 0 && !allowEmpty {
		return nil, fmt.Errorf("%w: roles must not be empty", domain.ErrValidation)
	}
	return roles, nil
}
