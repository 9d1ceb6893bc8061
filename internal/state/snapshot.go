package state

import "expensetracker/internal/models"

// Session is the principal part of a snapshot.
type Session struct {
	User          *models.User
	Authenticated bool
}

// Snapshot is a partial state record. A nil field is absent and leaves the
// corresponding part of the state untouched.
type Snapshot struct {
	Session      *Session
	Transactions []models.Transaction
	Categories   []models.Category
	DateRange    *models.DateRange
}

// Empty reports whether the snapshot carries no field at all.
func (s Snapshot) Empty() bool {
	return s.Session == nil && s.Transactions == nil && s.Categories == nil && s.DateRange == nil
}

// SnapshotOf returns a snapshot holding every field of st.
func SnapshotOf(st models.AppState) Snapshot {
	st = st.Clone()
	rng := st.DateRange
	return Snapshot{
		Session:      &Session{User: st.CurrentUser, Authenticated: st.IsAuthenticated},
		Transactions: st.Transactions,
		Categories:   st.Categories,
		DateRange:    &rng,
	}
}
