package models

import (
	"fmt"
	"strings"
)

// CategoryType represents which transaction types may reference a category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	switch t {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeBoth:
		return true
	}
	return false
}

// Category represents a transaction category
type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
	Type  CategoryType `json:"type"`
}

// Accepts reports whether a transaction of type t may reference the category.
func (c Category) Accepts(t TransactionType) bool {
	return c.Type == CategoryTypeBoth || string(c.Type) == string(t)
}

// Validate checks the field-level invariants of a category.
func (c Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("unsupported category type %q", c.Type)
	}
	return nil
}

// DefaultCategories returns the ten categories every fresh state starts with.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Food & Dining", Color: "#FF6B6B", Type: CategoryTypeExpense},
		{ID: "2", Name: "Bills & Utilities", Color: "#4ECDC4", Type: CategoryTypeExpense},
		{ID: "3", Name: "Travel", Color: "#45B7D1", Type: CategoryTypeExpense},
		{ID: "4", Name: "Shopping", Color: "#96CEB4", Type: CategoryTypeExpense},
		{ID: "5", Name: "Entertainment", Color: "#FFEAA7", Type: CategoryTypeExpense},
		{ID: "6", Name: "Healthcare", Color: "#DDA0DD", Type: CategoryTypeExpense},
		{ID: "7", Name: "Salary", Color: "#00B894", Type: CategoryTypeIncome},
		{ID: "8", Name: "Freelance", Color: "#00A085", Type: CategoryTypeIncome},
		{ID: "9", Name: "Investment", Color: "#4CAF50", Type: CategoryTypeIncome},
		{ID: "10", Name: "Other Income", Color: "#8BC34A", Type: CategoryTypeIncome},
	}
}
