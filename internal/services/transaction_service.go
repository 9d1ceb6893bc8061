package services

import (
	"sort"
	"strings"
	"time"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/state"
	"expensetracker/internal/uuid"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	store state.Dispatcher
	now   func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(store state.Dispatcher) TransactionServicer {
	return &transactionService{
		store: store,
		now:   time.Now,
	}
}

// CreateTransaction records a new transaction owned by the signed-in user.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		ID:     uuid.New(),
		UserID: userID,
	}
	if err := s.apply(st, &transaction, in); err != nil {
		return nil, err
	}

	s.store.Dispatch(state.AddTransaction{Transaction: transaction})
	return &transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	for _, t := range st.Transactions {
		if t.UserID == userID && matchesFilter(t, filter) {
			transactions = append(transactions, t)
		}
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	result := pagination.Page(transactions, page)
	return &result, nil
}

func matchesFilter(t models.Transaction, f TransactionFilter) bool {
	if f.FromDate != nil && t.Date.Before(*f.FromDate) {
		return false
	}
	if f.ToDate != nil && t.Date.After(*f.ToDate) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
		return false
	}
	if f.PaymentMode != nil && t.PaymentMode != *f.PaymentMode {
		return false
	}
	if f.MinAmount != nil && t.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && t.Amount > *f.MaxAmount {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Description), q) && !strings.Contains(strings.ToLower(t.Label), q) {
			return false
		}
	}
	return true
}

// GetTransactionByID retrieves a transaction owned by the user.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	transaction, ok := st.FindTransaction(transactionID)
	if !ok || transaction.UserID != userID {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &transaction, nil
}

// UpdateTransaction replaces the editable fields of a transaction owned by
// the user. The id and owner never change.
func (s *transactionService) UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	existing, ok := st.FindTransaction(transactionID)
	if !ok || existing.UserID != userID {
		return nil, apperrors.ErrTransactionNotFound
	}

	transaction := models.Transaction{ID: existing.ID, UserID: existing.UserID}
	if in.Date.IsZero() {
		in.Date = existing.Date
	}
	if err := s.apply(st, &transaction, in); err != nil {
		return nil, err
	}

	s.store.Dispatch(state.UpdateTransaction{Transaction: transaction})
	return &transaction, nil
}

// DeleteTransaction removes a transaction owned by the user. Deleting an
// unknown or foreign id changes nothing.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return err
	}

	transaction, ok := st.FindTransaction(transactionID)
	if !ok || transaction.UserID != userID {
		return nil
	}

	s.store.Dispatch(state.DeleteTransaction{ID: transactionID})
	return nil
}

// apply copies in onto t after checking the input and its category.
func (s *transactionService) apply(st models.AppState, t *models.Transaction, in TransactionInput) error {
	if !in.Type.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if in.Amount < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	category, ok := st.FindCategory(in.CategoryID)
	if !ok {
		return apperrors.ErrCategoryNotFound
	}
	if !category.Accepts(in.Type) {
		return apperrors.ErrCategoryTypeMismatch
	}

	if in.Date.IsZero() {
		in.Date = s.now()
	}
	if in.PaymentMode == "" {
		in.PaymentMode = models.PaymentModeOnline
	}

	t.Amount = in.Amount
	t.Type = in.Type
	t.Description = strings.TrimSpace(in.Description)
	t.Date = in.Date
	t.CategoryID = in.CategoryID
	t.Label = strings.TrimSpace(in.Label)
	t.PaymentMode = in.PaymentMode
	t.ProofURL = strings.TrimSpace(in.ProofURL)

	if err := t.Validate(); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return nil
}
