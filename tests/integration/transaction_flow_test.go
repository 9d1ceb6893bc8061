package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestTransactionFlow_CreateListUpdateDelete(t *testing.T) {
	app := setupApp(t, false)
	token := app.login(t, "john@example.com")

	// Step 1: Create
	id := app.addTransaction(t, token,
		`{"amount":8550,"type":"expense","description":"Groceries","date":"2025-03-04","categoryId":"1","paymentMode":"cash"}`)
	app.addTransaction(t, token,
		`{"amount":300000,"type":"income","description":"Salary","date":"2025-03-02","categoryId":"7"}`)

	// Step 2: List with filters
	rec := app.request("GET", "/api/v1/transactions?type=expense", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(data))
	}
	if result["total_items"].(float64) != 1 {
		t.Errorf("expected total_items 1, got %v", result["total_items"])
	}

	rec = app.request("GET", "/api/v1/transactions?search=salary", "", token)
	if got := len(parseJSON(t, rec)["data"].([]interface{})); got != 1 {
		t.Errorf("expected 1 search hit, got %d", got)
	}

	// Step 3: Update
	rec = app.request("PUT", "/api/v1/transactions/"+id,
		`{"amount":9000,"type":"expense","description":"Groceries and more","date":"2025-03-04","categoryId":"1","paymentMode":"online"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	txn := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if txn["amount"].(float64) != 9000 || txn["paymentMode"] != "online" {
		t.Errorf("update not applied: %v", txn)
	}

	// Step 4: Delete
	rec = app.request("DELETE", "/api/v1/transactions/"+id, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/transactions/"+id, "", token)
	assertErrorCode(t, rec, http.StatusNotFound, "TRANSACTION_NOT_FOUND")

	if got := len(app.Store.State().Transactions); got != 1 {
		t.Errorf("expected 1 transaction left, got %d", got)
	}
}

func TestTransactionFlow_Validation(t *testing.T) {
	app := setupApp(t, false)
	token := app.login(t, "john@example.com")

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"negative amount", `{"amount":-1,"type":"expense","description":"x","categoryId":"1"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown type", `{"amount":10,"type":"transfer","description":"x","categoryId":"1"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown category", `{"amount":10,"type":"expense","description":"x","categoryId":"404"}`, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
		{"category type mismatch", `{"amount":10,"type":"expense","description":"x","categoryId":"7"}`, http.StatusBadRequest, "CATEGORY_TYPE_MISMATCH"},
		{"bad date", `{"amount":10,"type":"expense","description":"x","categoryId":"1","date":"yesterday"}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request("POST", "/api/v1/transactions", tt.body, token)
			assertErrorCode(t, rec, tt.status, tt.code)
		})
	}

	if got := len(app.Store.State().Transactions); got != 0 {
		t.Errorf("rejected transactions must not be stored, got %d", got)
	}
}

func TestTransactionFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t, false)

	johnToken := app.login(t, "john@example.com")
	id := app.addTransaction(t, johnToken,
		`{"amount":1200,"type":"expense","description":"Bus","categoryId":"3"}`)

	sarahToken := app.login(t, "sarah@example.com")

	rec := app.request("GET", "/api/v1/transactions/"+id, "", sarahToken)
	assertErrorCode(t, rec, http.StatusNotFound, "TRANSACTION_NOT_FOUND")

	rec = app.request("DELETE", "/api/v1/transactions/"+id, "", sarahToken)
	assertErrorCode(t, rec, http.StatusNotFound, "TRANSACTION_NOT_FOUND")

	rec = app.request("GET", "/api/v1/transactions", "", sarahToken)
	if got := parseJSON(t, rec)["total_items"].(float64); got != 0 {
		t.Errorf("expected no visible transactions, got %v", got)
	}
}

func TestTransactionFlow_Pagination(t *testing.T) {
	app := setupApp(t, false)
	token := app.login(t, "john@example.com")

	for i := 1; i <= 5; i++ {
		app.addTransaction(t, token,
			fmt.Sprintf(`{"amount":%d,"type":"expense","description":"Item %d","categoryId":"4"}`, i*100, i))
	}

	rec := app.request("GET", "/api/v1/transactions?page=2&page_size=2", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if got := len(result["data"].([]interface{})); got != 2 {
		t.Errorf("expected 2 items on page 2, got %d", got)
	}
	if result["total_pages"].(float64) != 3 {
		t.Errorf("expected 3 pages, got %v", result["total_pages"])
	}
}

func TestTransactionFlow_SameDayRangeIncludesWholeDay(t *testing.T) {
	app := setupApp(t, false)
	token := app.login(t, "john@example.com")

	app.addTransaction(t, token,
		`{"amount":1500,"type":"expense","description":"Lunch","date":"2025-03-15T12:00:00Z","categoryId":"1"}`)
	app.addTransaction(t, token,
		`{"amount":900,"type":"expense","description":"Breakfast","date":"2025-03-16T08:00:00Z","categoryId":"1"}`)

	rec := app.request("GET", "/api/v1/transactions?from_date=2025-03-15&to_date=2025-03-15", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 transaction on 2025-03-15, got %d", len(data))
	}
	if got := data[0].(map[string]interface{})["description"]; got != "Lunch" {
		t.Errorf("expected Lunch, got %v", got)
	}
}
