package state

import "expensetracker/internal/models"

// Intent is a named request to change the application state. The set of
// intents is closed: only the types declared in this file satisfy it.
type Intent interface {
	// Name returns the stable identifier of the intent, e.g. "ADD_TRANSACTION".
	Name() string
	intent()
}

// Login establishes User as the session principal.
type Login struct {
	User models.User
}

// Logout clears the session.
type Logout struct{}

// AddTransaction appends a transaction with a previously unused id.
type AddTransaction struct {
	Transaction models.Transaction
}

// UpdateTransaction replaces the transaction with the same id.
type UpdateTransaction struct {
	Transaction models.Transaction
}

// DeleteTransaction removes the transaction with the given id, if present.
type DeleteTransaction struct {
	ID string
}

// AddCategory appends a category with a previously unused id.
type AddCategory struct {
	Category models.Category
}

// UpdateCategory replaces the category with the same id.
type UpdateCategory struct {
	Category models.Category
}

// DeleteCategory removes the category with the given id, if present.
// Transactions referencing it are kept.
type DeleteCategory struct {
	ID string
}

// SetDateRange replaces the active date range.
type SetDateRange struct {
	Range models.DateRange
}

// UpdateUserPreferences replaces the preferences of the session principal.
type UpdateUserPreferences struct {
	Preferences models.Preferences
}

// Restore replaces the fields of the state that are present in the
// snapshot. It is built by the persistence layer from validated data.
type Restore struct {
	Snapshot Snapshot
}

func (Login) Name() string                 { return "LOGIN" }
func (Logout) Name() string                { return "LOGOUT" }
func (AddTransaction) Name() string        { return "ADD_TRANSACTION" }
func (UpdateTransaction) Name() string     { return "UPDATE_TRANSACTION" }
func (DeleteTransaction) Name() string     { return "DELETE_TRANSACTION" }
func (AddCategory) Name() string           { return "ADD_CATEGORY" }
func (UpdateCategory) Name() string        { return "UPDATE_CATEGORY" }
func (DeleteCategory) Name() string        { return "DELETE_CATEGORY" }
func (SetDateRange) Name() string          { return "SET_DATE_RANGE" }
func (UpdateUserPreferences) Name() string { return "UPDATE_USER_PREFERENCES" }
func (Restore) Name() string               { return "RESTORE_SNAPSHOT" }

func (Login) intent()                 {}
func (Logout) intent()                {}
func (AddTransaction) intent()        {}
func (UpdateTransaction) intent()     {}
func (DeleteTransaction) intent()     {}
func (AddCategory) intent()           {}
func (UpdateCategory) intent()        {}
func (DeleteCategory) intent()        {}
func (SetDateRange) intent()          {}
func (UpdateUserPreferences) intent() {}
func (Restore) intent()               {}
