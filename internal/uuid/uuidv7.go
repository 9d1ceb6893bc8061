// Package uuid generates the time-ordered identifiers used for transactions
// and persisted rows.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Identifiers generated later sort after
// earlier ones, which keeps newly added transactions in creation order.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// The random source failed; a v4 identifier is still unique.
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
