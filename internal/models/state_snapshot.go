package models

// StateSnapshot is the single durable slot holding the serialized AppState.
// Key is the storage key; Payload is the JSON document.
type StateSnapshot struct {
	Base
	Key     string `gorm:"uniqueIndex;not null" json:"key"`
	Payload string `gorm:"type:text;not null" json:"payload"`
}
