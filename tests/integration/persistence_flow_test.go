package integration

import (
	"context"
	"net/http"
	"testing"

	"expensetracker/internal/testutil"
)

func TestPersistenceFlow_StateSurvivesRestart(t *testing.T) {
	db := setupIsolatedDB(t)
	app := setupAppOn(t, db, false)
	token := app.login(t, "john@example.com")

	id := app.addTransaction(t, token,
		`{"amount":7000,"type":"expense","description":"Dinner","date":"2025-03-08","categoryId":"1","paymentMode":"online"}`)

	// The mirror writes in the background.
	waitFor(t, func() bool {
		snap, ok := app.Adapter.Load(context.Background())
		return ok && len(snap.Transactions) == 1
	})

	restarted := setupAppOn(t, db, true)

	st := restarted.Store.State()
	testutil.AssertSignedIn(t, st, "1")
	testutil.AssertTransactionIDs(t, st.Transactions, id)

	// The same token is still honoured after the restart.
	rec := restarted.request("GET", "/api/v1/transactions/"+id, "", token)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPersistenceFlow_SeedOnlyWhenEmpty(t *testing.T) {
	app := setupApp(t, true)

	if got := len(app.Store.State().Transactions); got != 5 {
		t.Fatalf("expected 5 demo transactions, got %d", got)
	}
	testutil.AssertSignedOut(t, app.Store.State())
}
