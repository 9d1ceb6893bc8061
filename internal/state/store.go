// Package state holds the application state container: a reducer-driven
// store that is the single writer of models.AppState.
package state

import (
	"sync"

	"expensetracker/internal/models"
)

// Dispatcher is the store capability handed to components that read the
// state or request changes to it.
type Dispatcher interface {
	Dispatch(intent Intent)
	State() models.AppState
}

// Change describes one committed dispatch.
type Change struct {
	Version uint64
	Intent  Intent
	State   models.AppState
}

// Listener observes committed changes. Listeners run while the store is
// locked, in commit order, and must not block or dispatch.
type Listener func(Change)

// Store serializes dispatches around the reducer and notifies listeners
// after every committed change.
type Store struct {
	mu        sync.Mutex
	state     models.AppState
	version   uint64
	nextID    int
	listeners map[int]Listener
	order     []int
}

var _ Dispatcher = (*Store)(nil)

// NewStore creates a store holding initial.
func NewStore(initial models.AppState) *Store {
	return &Store{
		state:     initial.Clone(),
		listeners: make(map[int]Listener),
	}
}

// Dispatch reduces intent into the current state and notifies listeners.
func (s *Store) Dispatch(intent Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, intent)
	s.version++

	if len(s.order) == 0 {
		return
	}
	change := Change{Version: s.version, Intent: intent}
	for _, id := range s.order {
		change.State = s.state.Clone()
		s.listeners[id](change)
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Version returns the number of committed dispatches.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
