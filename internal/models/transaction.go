package models

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// PaymentMode is how a transaction was settled.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeOnline PaymentMode = "online"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	return m == PaymentModeCash || m == PaymentModeOnline
}

// Transaction represents a single income or expense entry owned by a user.
// Amount is expressed in minor units of the owner's preferred currency.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      int64           `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CategoryID  string          `json:"categoryId"`
	Label       string          `json:"label,omitempty"`
	PaymentMode PaymentMode     `json:"paymentMode"`
	ProofURL    string          `json:"proofUrl,omitempty"`
	UserID      string          `json:"userId"`
}

// Validate checks the field-level invariants of a transaction. Category
// resolution is not checked here.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction id is required")
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if !t.Type.Valid() {
		return fmt.Errorf("unsupported transaction type %q", t.Type)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if t.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if t.CategoryID == "" {
		return fmt.Errorf("category id is required")
	}
	if !t.PaymentMode.Valid() {
		return fmt.Errorf("unsupported payment mode %q", t.PaymentMode)
	}
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}
