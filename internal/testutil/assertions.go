package testutil

import (
	"errors"
	"slices"
	"testing"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

// AssertAppError checks that err is an *AppError carrying expectedCode.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertSignedIn checks that userID holds the session in st and that the
// authentication flag agrees.
func AssertSignedIn(t *testing.T, st models.AppState, userID string) {
	t.Helper()

	if !st.IsAuthenticated || st.CurrentUser == nil {
		t.Fatalf("expected %s to be signed in, got signed out", userID)
	}
	if st.CurrentUser.ID != userID {
		t.Errorf("expected %s to be signed in, got %s", userID, st.CurrentUser.ID)
	}
}

// AssertSignedOut checks that st holds no session.
func AssertSignedOut(t *testing.T, st models.AppState) {
	t.Helper()

	if st.IsAuthenticated || st.CurrentUser != nil {
		t.Errorf("expected no session, got %+v", st.CurrentUser)
	}
}

// AssertTransactionIDs checks that txns holds exactly the given ids, in order.
func AssertTransactionIDs(t *testing.T, txns []models.Transaction, ids ...string) {
	t.Helper()

	got := make([]string, len(txns))
	for i, tx := range txns {
		got[i] = tx.ID
	}
	if !slices.Equal(got, ids) {
		t.Errorf("expected transactions %v, got %v", ids, got)
	}
}
