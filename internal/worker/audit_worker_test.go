package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/list-manager/internal/events"
)

type memoryRecorder struct {
	mu    sync.Mutex
	seen  []events.EventType
	fails bool
}

func (m *memoryRecorder) Record(_ context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, event.Type)
	if m.fails {
		return errors.New("mongo unavailable")
	}
	return nil
}

func TestAuditWorkerFlushesOnShutdown(t *testing.T) {
	recorder := &memoryRecorder{fails: true}
	dispatcher := events.NewInMemoryDispatcher(nil)
	w := NewAuditWorker(recorder, 8, nil)
	w.Register(dispatcher)

	ctx := context.Background()
	_ = dispatcher.Publish(ctx, events.New(events.EventUserSignedUp, "u1", nil, nil))
	_ = dispatcher.Publish(ctx, events.New(events.EventLoginFailed, "", nil, events.LoginFailedPayload{Email: "x@example.com"}))

	runCtx, cancel := context.WithCancel(ctx)
	cancel()
	w.Run(runCtx)
	w.Wait()

	assert.ElementsMatch(t, []events.EventType{events.EventUserSignedUp, events.EventLoginFailed}, recorder.seen)
}

func TestAuditWorkerDropsWhenFull(t *testing.T) {
	recorder := &memoryRecorder{}
	w := NewAuditWorker(recorder, 1, nil)

	ctx := context.Background()
	assert.NoError(t, w.enqueue(ctx, events.New(events.EventUserBlocked, "u1", nil, nil)))
	assert.NoError(t, w.enqueue(ctx, events.New(events.EventUserBlocked, "u2", nil, nil)))
	assert.Len(t, w.queue, 1)
}
