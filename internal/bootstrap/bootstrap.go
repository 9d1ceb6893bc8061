// Package bootstrap brings the store to its starting state.
package bootstrap

import (
	"context"
	"time"

	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/persistence"
	"expensetracker/internal/state"
)

// Load restores the persisted record into store. It must run once, before
// any other intent is dispatched. When no usable record exists and seed is
// set, the demo transactions are restored instead. It reports whether a
// persisted record was used.
func Load(ctx context.Context, store state.Dispatcher, adapter persistence.Adapter, seed bool, now time.Time) bool {
	log := logger.Named("bootstrap")

	snap, ok := adapter.Load(ctx)
	if ok {
		store.Dispatch(state.Restore{Snapshot: snap})
		return true
	}

	if seed {
		log.Infow("Seeding demo transactions")
		store.Dispatch(state.Restore{Snapshot: state.Snapshot{Transactions: DemoTransactions(now)}})
	}
	return false
}

const day = 24 * time.Hour

// DemoTransactions returns the sample transactions of the first demo user,
// dated relative to now.
func DemoTransactions(now time.Time) []models.Transaction {
	return []models.Transaction{
		{ID: "1", Amount: 300000, Type: models.TransactionTypeIncome, Description: "Monthly Salary", Date: now.Add(-5 * day), CategoryID: "7", PaymentMode: models.PaymentModeOnline, UserID: "1"},
		{ID: "2", Amount: 8550, Type: models.TransactionTypeExpense, Description: "Grocery Shopping", Date: now.Add(-3 * day), CategoryID: "1", PaymentMode: models.PaymentModeCash, UserID: "1"},
		{ID: "3", Amount: 12000, Type: models.TransactionTypeExpense, Description: "Electricity Bill", Date: now.Add(-2 * day), CategoryID: "2", PaymentMode: models.PaymentModeOnline, UserID: "1"},
		{ID: "4", Amount: 50000, Type: models.TransactionTypeIncome, Description: "Freelance Project", Date: now.Add(-1 * day), CategoryID: "8", PaymentMode: models.PaymentModeOnline, UserID: "1"},
		{ID: "5", Amount: 4530, Type: models.TransactionTypeExpense, Description: "Coffee and Lunch", Date: now, CategoryID: "1", PaymentMode: models.PaymentModeCash, UserID: "1"},
	}
}
