package state

import (
	"fmt"
	"time"

	"expensetracker/internal/models"
)

// Initial returns the state a process starts from before anything is loaded.
func Initial(now time.Time) models.AppState {
	return models.AppState{
		Transactions: []models.Transaction{},
		Categories:   models.DefaultCategories(),
		DateRange:    models.DefaultDateRange(now),
	}
}

// Reduce applies intent to st and returns the new state. It never modifies
// st and never fails; an intent type it does not know is a programming error
// and panics.
func Reduce(st models.AppState, intent Intent) models.AppState {
	next := st.Clone()

	switch in := intent.(type) {
	case Login:
		u := in.User
		next.CurrentUser = &u
		next.IsAuthenticated = true

	case Logout:
		next.CurrentUser = nil
		next.IsAuthenticated = false

	case AddTransaction:
		if _, exists := next.FindTransaction(in.Transaction.ID); !exists {
			next.Transactions = append(next.Transactions, in.Transaction)
		}

	case UpdateTransaction:
		for i := range next.Transactions {
			if next.Transactions[i].ID == in.Transaction.ID {
				next.Transactions[i] = in.Transaction
			}
		}

	case DeleteTransaction:
		kept := next.Transactions[:0]
		for _, t := range next.Transactions {
			if t.ID != in.ID {
				kept = append(kept, t)
			}
		}
		next.Transactions = kept

	case AddCategory:
		if _, exists := next.FindCategory(in.Category.ID); !exists {
			next.Categories = append(next.Categories, in.Category)
		}

	case UpdateCategory:
		for i := range next.Categories {
			if next.Categories[i].ID == in.Category.ID {
				next.Categories[i] = in.Category
			}
		}

	case DeleteCategory:
		kept := next.Categories[:0]
		for _, c := range next.Categories {
			if c.ID != in.ID {
				kept = append(kept, c)
			}
		}
		next.Categories = kept

	case SetDateRange:
		next.DateRange = in.Range.Normalize()

	case UpdateUserPreferences:
		if next.CurrentUser != nil {
			next.CurrentUser.Preferences = in.Preferences
		}

	case Restore:
		next = restore(next, in.Snapshot)

	default:
		panic(fmt.Sprintf("state: unknown intent %T", intent))
	}

	return next
}

func restore(st models.AppState, snap Snapshot) models.AppState {
	if snap.Session != nil {
		if snap.Session.User != nil && snap.Session.Authenticated {
			u := *snap.Session.User
			st.CurrentUser = &u
			st.IsAuthenticated = true
		} else {
			st.CurrentUser = nil
			st.IsAuthenticated = false
		}
	}
	if snap.Transactions != nil {
		st.Transactions = uniqueTransactions(snap.Transactions)
	}
	if snap.Categories != nil {
		st.Categories = uniqueCategories(snap.Categories)
	}
	if snap.DateRange != nil {
		st.DateRange = snap.DateRange.Normalize()
	}
	return st
}

// uniqueTransactions keeps the first occurrence of every id.
func uniqueTransactions(in []models.Transaction) []models.Transaction {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Transaction, 0, len(in))
	for _, t := range in {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

func uniqueCategories(in []models.Category) []models.Category {
	seen := make(map[string]struct{}, len(in))
	out := make([]models.Category, 0, len(in))
	for _, c := range in {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
