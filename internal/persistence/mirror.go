package persistence

import (
	"context"
	"sync"
	"time"

	"expensetracker/internal/models"
	"expensetracker/internal/state"
)

// saveTimeout bounds each write. Writes run on a context detached from Run's
// so that shutdown never cuts a save short.
const saveTimeout = 5 * time.Second

// Mirror saves committed states in the background. Only the newest pending
// state is kept, so a burst of dispatches results in a single write of the
// latest version.
type Mirror struct {
	adapter Adapter

	mu      sync.Mutex
	pending *models.AppState
	latest  uint64

	wake chan struct{}
}

// NewMirror creates a mirror writing through adapter.
func NewMirror(adapter Adapter) *Mirror {
	return &Mirror{adapter: adapter, wake: make(chan struct{}, 1)}
}

// Observe is a state.Listener. It never blocks.
func (m *Mirror) Observe(c state.Change) {
	m.mu.Lock()
	if c.Version > m.latest {
		m.latest = c.Version
		st := c.State
		m.pending = &st
	}
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Run writes pending states until ctx is done, then flushes whatever is
// still pending and returns.
func (m *Mirror) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			m.flush(ctx)
			return nil
		case <-m.wake:
			m.flush(ctx)
		}
	}
}

func (m *Mirror) flush(ctx context.Context) {
	m.mu.Lock()
	st := m.pending
	m.pending = nil
	m.mu.Unlock()

	if st == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	m.adapter.Save(saveCtx, *st)
}
