package services

import (
	"time"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/persistence"
	"expensetracker/internal/state"
)

// maintenanceService handles whole-state operations. They bypass the
// session check and are only reachable through operator surfaces.
type maintenanceService struct {
	store state.Dispatcher
	now   func() time.Time
}

// NewMaintenanceService creates a new MaintenanceServicer.
func NewMaintenanceService(store state.Dispatcher) MaintenanceServicer {
	return &maintenanceService{store: store, now: time.Now}
}

// Snapshot returns the whole current state.
func (s *maintenanceService) Snapshot() models.AppState {
	return s.store.State()
}

// Reset replaces every part of the state with a fresh initial state, which
// also ends the session.
func (s *maintenanceService) Reset() {
	s.store.Dispatch(state.Restore{Snapshot: state.SnapshotOf(state.Initial(s.now()))})
}

// Import restores a persisted state record. Fields missing from payload are
// kept; invalid entries are skipped and reported in issues.
func (s *maintenanceService) Import(payload []byte) ([]string, error) {
	snap, issues, err := persistence.Decode(payload)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	s.store.Dispatch(state.Restore{Snapshot: snap})
	return issues, nil
}
