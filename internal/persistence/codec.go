package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"expensetracker/internal/models"
	"expensetracker/internal/state"
)

// Encode serializes the state into the persisted layout.
func Encode(st models.AppState) ([]byte, error) {
	return json.Marshal(st.Clone())
}

// rawState mirrors the persisted layout with every field left undecoded so
// each one can be type-checked on its own.
type rawState struct {
	CurrentUser     json.RawMessage `json:"currentUser"`
	IsAuthenticated json.RawMessage `json:"isAuthenticated"`
	Transactions    json.RawMessage `json:"transactions"`
	Categories      json.RawMessage `json:"categories"`
	DateRange       json.RawMessage `json:"dateRange"`
}

// Decode parses a persisted payload into a snapshot. A payload that is not
// a JSON object is an error. Fields that are malformed are left out of the
// snapshot, and invalid list entries are dropped; each such problem is
// reported in issues.
func Decode(payload []byte) (snap state.Snapshot, issues []string, err error) {
	var raw rawState
	if err := json.Unmarshal(payload, &raw); err != nil {
		return state.Snapshot{}, nil, fmt.Errorf("decode state record: %w", err)
	}

	snap.Session, issues = decodeSession(raw, issues)
	snap.Transactions, issues = decodeTransactions(raw.Transactions, issues)
	snap.Categories, issues = decodeCategories(raw.Categories, issues)
	snap.DateRange, issues = decodeDateRange(raw.DateRange, issues)
	return snap, issues, nil
}

func absent(m json.RawMessage) bool {
	return len(m) == 0 || bytes.Equal(bytes.TrimSpace(m), []byte("null"))
}

func decodeSession(raw rawState, issues []string) (*state.Session, []string) {
	if len(raw.CurrentUser) == 0 && len(raw.IsAuthenticated) == 0 {
		return nil, issues
	}

	session := &state.Session{}
	var authenticated bool
	if !absent(raw.IsAuthenticated) {
		if err := json.Unmarshal(raw.IsAuthenticated, &authenticated); err != nil {
			return session, append(issues, fmt.Sprintf("isAuthenticated: %v", err))
		}
	}
	if absent(raw.CurrentUser) {
		return session, issues
	}

	var user models.User
	if err := json.Unmarshal(raw.CurrentUser, &user); err != nil {
		return session, append(issues, fmt.Sprintf("currentUser: %v", err))
	}
	if err := user.Validate(); err != nil {
		return session, append(issues, fmt.Sprintf("currentUser: %v", err))
	}
	session.User = &user
	session.Authenticated = authenticated
	return session, issues
}

func decodeTransactions(m json.RawMessage, issues []string) ([]models.Transaction, []string) {
	if absent(m) {
		return nil, issues
	}
	var items []json.RawMessage
	if err := json.Unmarshal(m, &items); err != nil {
		return nil, append(issues, fmt.Sprintf("transactions: %v", err))
	}

	out := make([]models.Transaction, 0, len(items))
	for i, item := range items {
		var t models.Transaction
		if err := json.Unmarshal(item, &t); err != nil {
			issues = append(issues, fmt.Sprintf("transactions[%d]: %v", i, err))
			continue
		}
		if err := t.Validate(); err != nil {
			issues = append(issues, fmt.Sprintf("transactions[%d]: %v", i, err))
			continue
		}
		out = append(out, t)
	}
	return out, issues
}

func decodeCategories(m json.RawMessage, issues []string) ([]models.Category, []string) {
	if absent(m) {
		return nil, issues
	}
	var items []json.RawMessage
	if err := json.Unmarshal(m, &items); err != nil {
		return nil, append(issues, fmt.Sprintf("categories: %v", err))
	}

	out := make([]models.Category, 0, len(items))
	for i, item := range items {
		var c models.Category
		if err := json.Unmarshal(item, &c); err != nil {
			issues = append(issues, fmt.Sprintf("categories[%d]: %v", i, err))
			continue
		}
		if err := c.Validate(); err != nil {
			issues = append(issues, fmt.Sprintf("categories[%d]: %v", i, err))
			continue
		}
		out = append(out, c)
	}
	return out, issues
}

func decodeDateRange(m json.RawMessage, issues []string) (*models.DateRange, []string) {
	if absent(m) {
		return nil, issues
	}
	var rng models.DateRange
	if err := json.Unmarshal(m, &rng); err != nil {
		return nil, append(issues, fmt.Sprintf("dateRange: %v", err))
	}
	if rng.Start.IsZero() || rng.End.IsZero() {
		return nil, append(issues, "dateRange: start and end are required")
	}
	return &rng, issues
}
