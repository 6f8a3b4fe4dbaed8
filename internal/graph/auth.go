package graph

import (
	"context"
	"time"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
)

// AuthPayload is returned by signup, login and revalidate.
type AuthPayload struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *UserNode `json:"user"`
}

func newAuthPayload(result *domain.AuthResult, user *UserNode) *AuthPayload {
	return &AuthPayload{
		Token:     result.Credential.Token,
		IssuedAt:  result.Credential.IssuedAt,
		ExpiresAt: result.Credential.ExpiresAt,
		User:      user,
	}
}

// Signup is reachable without a credential.
func (r *Resolver) Signup(ctx context.Context, in domain.SignupInput) (*AuthPayload, error) {
	if _, err := auth.Authorize(ctx, auth.OpSignup); err != nil {
		return nil, err
	}
	result, err := r.auth.Signup(ctx, in)
	if err != nil {
		return nil, err
	}
	return newAuthPayload(result, &UserNode{User: result.User}), nil
}

// Login is reachable without a credential.
func (r *Resolver) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	if _, err := auth.Authorize(ctx, auth.OpLogin); err != nil {
		return nil, err
	}
	result, err := r.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return newAuthPayload(result, &UserNode{User: result.User}), nil
}

// Revalidate issues a fresh credential for the caller. Nested user fields are
// authorized like anywhere else.
func (r *Resolver) Revalidate(ctx context.Context, sel Selection) (*AuthPayload, error) {
	user, err := auth.Authorize(ctx, auth.OpRevalidate)
	if err != nil {
		return nil, err
	}
	result, err := r.auth.Revalidate(ctx, user)
	if err != nil {
		return nil, err
	}
	node, err := r.resolveUser(ctx, result.User, sel)
	if err != nil {
		return nil, err
	}
	return newAuthPayload(result, node), nil
}
