package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expensetracker/internal/models"
	"expensetracker/internal/state"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// FixedNow is the reference instant used by fixtures and store helpers.
var FixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

// NewTestUser returns a valid user with a unique id and email.
func NewTestUser() models.User {
	n := nextID()
	return models.User{
		ID:    fmt.Sprintf("user-%d", n),
		Name:  fmt.Sprintf("Test User %d", n),
		Email: fmt.Sprintf("user%d@test.com", n),
		Preferences: models.Preferences{
			Currency: "USD",
			Language: "en",
			Theme:    models.ThemeLight,
		},
	}
}

// NewTestTransaction returns a valid transaction owned by userID, dated at
// FixedNow.
func NewTestTransaction(userID, categoryID string, txType models.TransactionType, amount int64) models.Transaction {
	n := nextID()
	return models.Transaction{
		ID:          fmt.Sprintf("tx-%d", n),
		Amount:      amount,
		Type:        txType,
		Description: fmt.Sprintf("Test Transaction %d", n),
		Date:        FixedNow,
		CategoryID:  categoryID,
		PaymentMode: models.PaymentModeCash,
		UserID:      userID,
	}
}

// NewTestCategory returns a valid category of the given type.
func NewTestCategory(categoryType models.CategoryType) models.Category {
	n := nextID()
	return models.Category{
		ID:    fmt.Sprintf("cat-%d", n),
		Name:  fmt.Sprintf("Test Category %d", n),
		Color: "#123ABC",
		Type:  categoryType,
	}
}

// NewTestStore returns a store in its initial state as of FixedNow.
func NewTestStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(state.Initial(FixedNow))
}

// NewLoggedInStore returns a store with a fresh test user signed in.
func NewLoggedInStore(t *testing.T) (*state.Store, models.User) {
	t.Helper()
	store := NewTestStore(t)
	user := NewTestUser()
	store.Dispatch(state.Login{User: user})
	return store, user
}

// AddTestTransaction dispatches a new transaction into store and returns it.
func AddTestTransaction(t *testing.T, store *state.Store, userID, categoryID string, txType models.TransactionType, amount int64) models.Transaction {
	t.Helper()
	tx := NewTestTransaction(userID, categoryID, txType, amount)
	store.Dispatch(state.AddTransaction{Transaction: tx})
	return tx
}
