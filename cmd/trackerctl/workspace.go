package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"expensetracker/internal/auth"
	"expensetracker/internal/bootstrap"
	"expensetracker/internal/config"
	"expensetracker/internal/models"
	"expensetracker/internal/persistence"
	"expensetracker/internal/services"
	"expensetracker/internal/state"
)

// workspace is the persisted state loaded into a private store for one
// command invocation.
type workspace struct {
	store       *state.Store
	slot        persistence.Slot
	maintenance services.MaintenanceServicer
	users       *auth.Authenticator
	loc         *time.Location
	close       func() error
}

// opener loads a workspace.
type opener func(ctx context.Context) (*workspace, error)

// openConfigured opens the storage selected by the environment.
func openConfigured(ctx context.Context) (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	storage, err := bootstrap.OpenStorage(cfg)
	if err != nil {
		return nil, err
	}

	ws, err := openSlot(ctx, storage.Slot, cfg.Location)
	if err != nil {
		storage.Close()
		return nil, err
	}
	ws.close = storage.Close
	return ws, nil
}

// openSlot restores the record held by slot. Nothing is seeded: an empty
// slot yields the initial state.
func openSlot(ctx context.Context, slot persistence.Slot, loc *time.Location) (*workspace, error) {
	// Only lookups are made, so the cheapest cost will do.
	users, err := auth.NewAuthenticator(bcrypt.MinCost, auth.DemoCredentials()...)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	now := time.Now()
	store := state.NewStore(state.Initial(now))
	bootstrap.Load(ctx, store, persistence.NewAdapter(slot), false, now)

	return &workspace{
		store:       store,
		slot:        slot,
		maintenance: services.NewMaintenanceService(store),
		users:       users,
		loc:         loc,
		close:       func() error { return nil },
	}, nil
}

// save writes the current state back to the slot. Unlike the server's
// mirror, a failed write is an error for the command.
func (w *workspace) save(ctx context.Context) error {
	payload, err := persistence.Encode(w.store.State())
	if err != nil {
		return err
	}
	if err := w.slot.Write(ctx, payload); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// user resolves id, preferring the signed-in copy which carries the latest
// preferences.
func (w *workspace) user(id string) (*models.User, error) {
	st := w.store.State()
	if st.CurrentUser != nil && st.CurrentUser.ID == id {
		return st.CurrentUser, nil
	}
	u, ok := w.users.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown user %q", id)
	}
	return &u, nil
}
