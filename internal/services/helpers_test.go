package services

import (
	"expensetracker/internal/models"
	"expensetracker/internal/state"
)

func addTransaction(t models.Transaction) state.Intent {
	return state.AddTransaction{Transaction: t}
}

func addCategory(c models.Category) state.Intent {
	return state.AddCategory{Category: c}
}
