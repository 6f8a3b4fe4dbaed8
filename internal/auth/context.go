package auth

import (
	"context"

	"github.com/spec-kit/list-manager/internal/domain"
)

type contextKey struct {
	name string
}

var userCtxKey = &contextKey{"user"}

// WithUser returns a context carrying the resolved user for the current request.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// UserFromContext returns the resolved user attached by the auth middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userCtxKey).(*domain.User)
	return user, ok && user != nil
}
