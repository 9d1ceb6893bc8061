package events

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"expensetracker/internal/logger"
	"expensetracker/internal/state"
)

// Publishes run on a context detached from Run's, bounded by publishTimeout
// (declared in amqp.go), so that an event taken off the buffer is not lost
// to shutdown.

const drainTimeout = 5 * time.Second

// DefaultBuffer is the number of events a Forwarder holds while the
// publisher is busy.
const DefaultBuffer = 256

// Forwarder turns committed changes into events and hands them to a
// Publisher from its own goroutine. Events are dropped, and counted, when the
// buffer is full.
type Forwarder struct {
	publisher Publisher
	events    chan Event
	dropped   atomic.Uint64
	now       func() time.Time
	log       *zap.SugaredLogger
}

// NewForwarder creates a Forwarder buffering up to buffer events.
func NewForwarder(publisher Publisher, buffer int) *Forwarder {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Forwarder{
		publisher: publisher,
		events:    make(chan Event, buffer),
		now:       time.Now,
		log:       logger.Named("events"),
	}
}

// Observe is a state.Listener. It never blocks.
func (f *Forwarder) Observe(c state.Change) {
	select {
	case f.events <- NewEvent(c, f.now()):
	default:
		f.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded because the buffer was full.
func (f *Forwarder) Dropped() uint64 {
	return f.dropped.Load()
}

// Run publishes events until ctx is done, then publishes what is still
// buffered and returns. Publish failures are logged and skipped.
func (f *Forwarder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			f.drain(ctx)
			return nil
		case e := <-f.events:
			f.publish(ctx, e)
		}
	}
}

func (f *Forwarder) drain(ctx context.Context) {
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()
	for {
		select {
		case e := <-f.events:
			f.publish(drainCtx, e)
		default:
			if n := f.Dropped(); n > 0 {
				f.log.Warnw("state change events dropped", "count", n)
			}
			return
		}
	}
}

func (f *Forwarder) publish(ctx context.Context, e Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := f.publisher.Publish(ctx, e); err != nil {
		f.log.Errorw("failed to publish state change", "intent", e.Intent, "version", e.Version, "error", err)
	}
}
