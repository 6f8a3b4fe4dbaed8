package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/list-manager/internal/domain"
)

type fakeCounter struct {
	counts      map[string]int64
	expires     map[string]time.Duration
	err         error
	expireFails int
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "incr", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.counts[key]++
	cmd.SetVal(f.counts[key])
	return cmd
}

func (f *fakeCounter) ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key, "nx")
	if f.expireFails > 0 {
		f.expireFails--
		cmd.SetErr(context.DeadlineExceeded)
		return cmd
	}
	if _, ok := f.expires[key]; ok {
		cmd.SetVal(false)
		return cmd
	}
	f.expires[key] = expiration
	cmd.SetVal(true)
	return cmd
}

func (f *fakeCounter) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	for _, k := range keys {
		delete(f.counts, k)
		delete(f.expires, k)
	}
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestRedisLoginThrottleBlocksAfterLimit(t *testing.T) {
	counter := newFakeCounter()
	throttle := NewRedisLoginThrottle(counter, 3, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.NoError(t, throttle.Allow(ctx, "a@example.com"))
	}
	assert.ErrorIs(t, throttle.Allow(ctx, "a@example.com"), domain.ErrTooManyAttempts)
	assert.NoError(t, throttle.Allow(ctx, "b@example.com"))
	assert.Equal(t, time.Minute, counter.expires["login:attempts:a@example.com"])
}

func TestRedisLoginThrottleReset(t *testing.T) {
	counter := newFakeCounter()
	throttle := NewRedisLoginThrottle(counter, 1, time.Minute, nil)
	ctx := context.Background()

	assert.NoError(t, throttle.Allow(ctx, "a@example.com"))
	assert.Error(t, throttle.Allow(ctx, "a@example.com"))

	throttle.Reset(ctx, "a@example.com")
	assert.NoError(t, throttle.Allow(ctx, "a@example.com"))
}

func TestRedisLoginThrottleFailsOpen(t *testing.T) {
	counter := newFakeCounter()
	counter.err = errors.New("redis down")
	throttle := NewRedisLoginThrottle(counter, 1, time.Minute, nil)

	for i := 0; i < 5; i++ {
		assert.NoError(t, throttle.Allow(context.Background(), "a@example.com"))
	}
}

func TestRedisLoginThrottleSetsWindowAfterFailedExpire(t *testing.T) {
	counter := newFakeCounter()
	counter.expireFails = 1
	throttle := NewRedisLoginThrottle(counter, 3, time.Minute, nil)
	ctx := context.Background()
	key := "login:attempts:a@example.com"

	assert.NoError(t, throttle.Allow(ctx, "a@example.com"))
	_, hasTTL := counter.expires[key]
	assert.False(t, hasTTL)

	assert.NoError(t, throttle.Allow(ctx, "a@example.com"))
	assert.Equal(t, time.Minute, counter.expires[key])
}

func TestRedisLoginThrottleKeepsFirstWindow(t *testing.T) {
	counter := newFakeCounter()
	throttle := NewRedisLoginThrottle(counter, 5, time.Minute, nil)
	ctx := context.Background()

	assert.NoError(t, throttle.Allow(ctx, "a@example.com"))
	counter.expires["login:attempts:a@example.com"] = 10 * time.Second
	assert.NoError(t, throttle.Allow(ctx, "a@example.com"))
	assert.Equal(t, 10*time.Second, counter.expires["login:attempts:a@example.com"])
}

func TestRedisLoginThrottleDisabled(t *testing.T) {
	throttle := NewRedisLoginThrottle(newFakeCounter(), 0, time.Minute, nil)
	for i := 0; i < 20; i++ {
		assert.NoError(t, throttle.Allow(context.Background(), "a@example.com"))
	}
}
