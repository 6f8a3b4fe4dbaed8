package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/domain"
	"github.com/spec-kit/list-manager/internal/events"
)

// UserDirectory is the subset of the user directory the auth flows need.
type UserDirectory interface {
	Create(ctx context.Context, in domain.SignupInput) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CredentialIssuer signs credentials for a subject.
type CredentialIssuer interface {
	Issue(subjectID string) (domain.Credential, error)
}

// AuthService coordinates signup, login and revalidation.
type AuthService struct {
	users      UserDirectory
	tokens     CredentialIssuer
	throttle   auth.LoginThrottle
	dispatcher events.Dispatcher
	logger     *zap.Logger
	dummyHash  string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Users      UserDirectory
	Tokens     CredentialIssuer
	Throttle   auth.LoginThrottle
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	// Compared against when the email is unknown so both login failures cost one bcrypt run.
	dummy, err := auth.HashPassword("list-manager-unknown-user", deps.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	throttle := deps.Throttle
	if throttle == nil {
		throttle = auth.NoopLoginThrottle{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.Users,
		tokens:     deps.Tokens,
		throttle:   throttle,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		dummyHash:  dummy,
	}, nil
}

// Signup creates an account and returns a credential for it.
func (s *AuthService) Signup(ctx context.Context, in domain.SignupInput) (*domain.AuthResult, error) {
	user, err := s.users.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventUserSignedUp, user.ID, nil, nil))
	return result, nil
}

// Login verifies email and password. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if err := s.throttle.Allow(ctx, email); err != nil {
		s.loginFailed(ctx, "", email, "too_many_attempts")
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		_ = auth.ComparePassword(s.dummyHash, password)
		s.loginFailed(ctx, "", email, "unknown_email")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Error("compare password", zap.String("user_id", user.ID), zap.Error(err))
		}
		s.loginFailed(ctx, user.ID, email, "wrong_password")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.loginFailed(ctx, user.ID, email, "inactive")
		return nil, domain.ErrUserInactive
	}

	s.throttle.Reset(ctx, email)
	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventUserLoggedIn, user.ID, nil, nil))
	return result, nil
}

// Revalidate issues a fresh credential for an already resolved user.
// Earlier credentials stay valid until they expire.
func (s *AuthService) Revalidate(_ context.Context, user *domain.User) (*domain.AuthResult, error) {
	if user == nil {
		return nil, domain.ErrMissingCredential
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*domain.AuthResult, error) {
	cred, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}
	return &domain.AuthResult{Credential: cred, User: user.Sanitized()}, nil
}

func (s *AuthService) loginFailed(ctx context.Context, userID, email, reason string) {
	s.logger.Debug("login failed", zap.String("email", email), zap.String("reason", reason))
	s.publish(ctx, events.New(events.EventLoginFailed, userID, nil, events.LoginFailedPayload{Email: email, Reason: reason}))
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
