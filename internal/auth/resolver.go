package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/list-manager/internal/domain"
)

// TokenVerifier extracts the subject id from a raw credential.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserFinder loads the current user record by id.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// IdentityResolver turns a raw credential into an active user.
type IdentityResolver struct {
	tokens TokenVerifier
	users  UserFinder
}

// NewIdentityResolver constructs a resolver.
func NewIdentityResolver(tokens TokenVerifier, users UserFinder) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

// Resolve verifies the credential, loads the subject and rejects inactive users.
// Role and active state always come from the directory, never from the token.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	subjectID, err := r.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := r.users.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user %s: %w", subjectID, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	return user.Sanitized(), nil
}
