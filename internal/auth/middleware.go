package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/list-manager/internal/domain"
)

const (
	bearerPrefix = "Bearer "
	userLocalKey = "auth_user"
)

// Resolver turns a raw credential into an active user.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// FailureRecorder counts guard failures by reason.
type FailureRecorder interface {
	RecordAuthFailure(reason string)
}

// AuthMiddleware validates bearer credentials and attaches the resolved user.
// It establishes who the caller is and never checks roles.
type AuthMiddleware struct {
	resolver Resolver
	metrics  FailureRecorder
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver Resolver, metrics FailureRecorder, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{resolver: resolver, metrics: metrics, logger: logger}
}

// ExtractBearer returns the token from an Authorization header value.
// The scheme is matched case-sensitively with exactly one space.
func ExtractBearer(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", domain.ErrMissingCredential
	}
	token := header[len(bearerPrefix):]
	if token == "" || strings.TrimLeft(token, " \t") != token {
		return "", domain.ErrMissingCredential
	}
	return token, nil
}

// Authenticate resolves the caller from the Authorization header value.
func (m *AuthMiddleware) Authenticate(ctx context.Context, header string) (*domain.User, error) {
	token, err := ExtractBearer(header)
	if err != nil {
		return nil, err
	}
	return m.resolver.Resolve(ctx, token)
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	user, err := m.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		reason := FailureReason(err)
		if m.metrics != nil {
			m.metrics.RecordAuthFailure(reason)
		}
		m.logger.Debug("authentication failed",
			zap.String("reason", reason),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return err
	}

	c.Locals(userLocalKey, user)
	c.SetUserContext(WithUser(c.UserContext(), user))
	return c.Next()
}

// UserFromFiber retrieves the authenticated user from fiber locals.
func UserFromFiber(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(userLocalKey).(*domain.User)
	return user, ok && user != nil
}
