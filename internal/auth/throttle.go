package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/list-manager/internal/domain"
)

// LoginThrottle limits login attempts per email.
type LoginThrottle interface {
	// Allow records one attempt and returns domain.ErrTooManyAttempts when the
	// window is exhausted.
	Allow(ctx context.Context, email string) error
	// Reset clears the attempts recorded for email.
	Reset(ctx context.Context, email string)
}

type attemptCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLoginThrottle is a fixed window counter keyed by email.
// Redis failures never block a login.
type RedisLoginThrottle struct {
	client      attemptCounter
	maxAttempts int
	window      time.Duration
	timeout     time.Duration
	logger      *zap.Logger
}

// NewRedisLoginThrottle constructs a throttle. A non-positive maxAttempts disables it.
func NewRedisLoginThrottle(client attemptCounter, maxAttempts int, window time.Duration, logger *zap.Logger) *RedisLoginThrottle {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLoginThrottle{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		timeout:     250 * time.Millisecond,
		logger:      logger,
	}
}

func attemptsKey(email string) string {
	return "login:attempts:" + email
}

// Allow implements LoginThrottle.
func (t *RedisLoginThrottle) Allow(ctx context.Context, email string) error {
	if t.maxAttempts <= 0 || t.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	key := attemptsKey(email)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.String("op", "incr"), zap.Error(err))
		return nil
	}
	// NX keeps the first window and repairs a key that was left without a TTL.
	if err := t.client.ExpireNX(ctx, key, t.window).Err(); err != nil {
		t.logger.Warn("login throttle unavailable", zap.String("op", "expire"), zap.Error(err))
	}
	if count > int64(t.maxAttempts) {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// Reset implements LoginThrottle.
func (t *RedisLoginThrottle) Reset(ctx context.Context, email string) {
	if t.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	if err := t.client.Del(ctx, attemptsKey(email)).Err(); err != nil {
		t.logger.Warn("login throttle unavailable", zap.String("op", "del"), zap.Error(err))
	}
}

// NoopLoginThrottle admits every attempt.
type NoopLoginThrottle struct{}

func (NoopLoginThrottle) Allow(context.Context, string) error { return nil }

func (NoopLoginThrottle) Reset(context.Context, string) {}
