// Package events publishes a feed of committed state changes to a message
// broker.
package events

import (
	"context"
	"encoding/json"
	"time"

	"expensetracker/internal/state"
)

// Event is the message published for every committed dispatch. It carries
// no transaction data; consumers read the state through the API.
type Event struct {
	Intent           string    `json:"intent"`
	Version          uint64    `json:"version"`
	UserID           string    `json:"userId,omitempty"`
	TransactionCount int       `json:"transactionCount"`
	OccurredAt       time.Time `json:"occurredAt"`
}

// NewEvent describes c. UserID is the session principal after the change.
func NewEvent(c state.Change, now time.Time) Event {
	e := Event{
		Intent:           c.Intent.Name(),
		Version:          c.Version,
		TransactionCount: len(c.State.Transactions),
		OccurredAt:       now.UTC(),
	}
	if c.State.CurrentUser != nil {
		e.UserID = c.State.CurrentUser.ID
	}
	return e
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event published by ToJSON.
func EventFromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Publisher delivers events to consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}
