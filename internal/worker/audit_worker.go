package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/list-manager/internal/events"
)

const (
	defaultQueueSize = 256
	recordTimeout    = 5 * time.Second
)

// Recorder persists a single event.
type Recorder interface {
	Record(ctx context.Context, event events.Event) error
}

// AuditWorker moves audit writes off the request path.
// Events are queued by dispatcher handlers and drained by a single goroutine.
type AuditWorker struct {
	recorder Recorder
	queue    chan events.Event
	logger   *zap.Logger
	done     chan struct{}
}

// NewAuditWorker creates a worker with a bounded queue.
func NewAuditWorker(recorder Recorder, queueSize int, logger *zap.Logger) *AuditWorker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditWorker{
		recorder: recorder,
		queue:    make(chan events.Event, queueSize),
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Register subscribes the worker to every audited event type.
func (w *AuditWorker) Register(dispatcher events.Dispatcher) {
	for _, t := range events.AllEventTypes() {
		dispatcher.Subscribe(t, w.enqueue)
	}
}

func (w *AuditWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("audit queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
	}
	return nil
}

// Run drains the queue until ctx is cancelled, then flushes what is left.
func (w *AuditWorker) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case event := <-w.queue:
			w.record(event)
		case <-ctx.Done():
			for {
				select {
				case event := <-w.queue:
					w.record(event)
				default:
					return
				}
			}
		}
	}
}

// Wait blocks until Run has returned.
func (w *AuditWorker) Wait() {
	<-w.done
}

func (w *AuditWorker) record(event events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := w.recorder.Record(ctx, event); err != nil {
		w.logger.Error("record audit event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
