// Package persistence mirrors the application state into durable storage
// and restores it on startup.
package persistence

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/state"
)

// Adapter loads and saves whole-state records. Both operations fail soft:
// problems are logged and never reach the caller.
type Adapter interface {
	// Load returns the stored snapshot. ok is false when nothing usable is
	// stored.
	Load(ctx context.Context) (snap state.Snapshot, ok bool)
	Save(ctx context.Context, st models.AppState)
}

type slotAdapter struct {
	slot Slot
	log  *zap.SugaredLogger
}

// NewAdapter creates an Adapter over slot.
func NewAdapter(slot Slot) Adapter {
	return &slotAdapter{slot: slot, log: logger.Named("persistence")}
}

func (a *slotAdapter) Load(ctx context.Context) (state.Snapshot, bool) {
	payload, err := a.slot.Read(ctx)
	if errors.Is(err, ErrNoRecord) {
		a.log.Infow("No stored state record")
		return state.Snapshot{}, false
	}
	if err != nil {
		a.log.Errorw("Failed to read state record", "error", err)
		return state.Snapshot{}, false
	}

	snap, issues, err := Decode(payload)
	if err != nil {
		a.log.Errorw("Discarding malformed state record", "error", err)
		return state.Snapshot{}, false
	}
	for _, issue := range issues {
		a.log.Warnw("Dropped invalid part of state record", "issue", issue)
	}
	a.log.Infow("Loaded state record",
		"transactions", len(snap.Transactions),
		"categories", len(snap.Categories),
	)
	return snap, true
}

func (a *slotAdapter) Save(ctx context.Context, st models.AppState) {
	payload, err := Encode(st)
	if err != nil {
		a.log.Errorw("Failed to encode state record", "error", err)
		return
	}
	if err := a.slot.Write(ctx, payload); err != nil {
		a.log.Errorw("Failed to write state record", "error", err)
	}
}
