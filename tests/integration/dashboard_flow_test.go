package integration

import (
	"net/http"
	"testing"
)

// marchActivity signs John in, selects March 2025 and records three
// transactions inside it plus one in April.
func marchActivity(t *testing.T, app *testApp) string {
	t.Helper()
	token := app.login(t, "john@example.com")
	app.setMarch(t, token)

	app.addTransaction(t, token, `{"amount":300000,"type":"income","description":"Salary","date":"2025-03-02","categoryId":"7","paymentMode":"online"}`)
	app.addTransaction(t, token, `{"amount":8550,"type":"expense","description":"Groceries","date":"2025-03-04T18:30","categoryId":"1","paymentMode":"cash"}`)
	app.addTransaction(t, token, `{"amount":1200,"type":"expense","description":"Electricity","date":"2025-03-04","categoryId":"2","paymentMode":"online"}`)
	app.addTransaction(t, token, `{"amount":5000,"type":"expense","description":"Concert","date":"2025-04-02","categoryId":"5","paymentMode":"online"}`)
	return token
}

func TestDashboardFlow_Summary(t *testing.T) {
	app := setupApp(t, false)
	token := marchActivity(t, app)

	rec := app.request("GET", "/api/v1/dashboard/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)
	if summary["income"].(float64) != 300000 {
		t.Errorf("expected income 300000, got %v", summary["income"])
	}
	if summary["expenses"].(float64) != 9750 {
		t.Errorf("expected expenses 9750, got %v", summary["expenses"])
	}
	if summary["balance"].(float64) != 290250 {
		t.Errorf("expected balance 290250, got %v", summary["balance"])
	}
	counts := summary["counts"].(map[string]interface{})
	if counts["income"].(float64) != 1 || counts["expense"].(float64) != 2 {
		t.Errorf("unexpected counts %v", counts)
	}
	if summary["currency"] != "USD" {
		t.Errorf("expected USD, got %v", summary["currency"])
	}
}

func TestDashboardFlow_Series(t *testing.T) {
	app := setupApp(t, false)
	token := marchActivity(t, app)

	rec := app.request("GET", "/api/v1/dashboard/daily", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	days := parseJSON(t, rec)["days"].([]interface{})
	if len(days) != 3 {
		t.Fatalf("expected 3 days (Mar 2 to Mar 4), got %d", len(days))
	}
	gap := days[1].(map[string]interface{})
	if gap["income"].(float64) != 0 || gap["expenses"].(float64) != 0 {
		t.Errorf("expected an empty day in the gap, got %v", gap)
	}
	last := days[2].(map[string]interface{})
	if last["expenses"].(float64) != 9750 {
		t.Errorf("expected 9750 on Mar 4, got %v", last["expenses"])
	}

	rec = app.request("GET", "/api/v1/dashboard/categories", "", token)
	cats := parseJSON(t, rec)["categories"].([]interface{})
	if len(cats) != 2 {
		t.Fatalf("expected 2 expense categories, got %d", len(cats))
	}
	top := cats[0].(map[string]interface{})
	if top["categoryName"] != "Food & Dining" || top["total"].(float64) != 8550 {
		t.Errorf("unexpected top category %v", top)
	}

	rec = app.request("GET", "/api/v1/dashboard/recent?limit=2", "", token)
	recent := parseJSON(t, rec)["transactions"].([]interface{})
	if len(recent) != 2 {
		t.Errorf("expected 2 recent transactions, got %d", len(recent))
	}

	rec = app.request("GET", "/api/v1/dashboard/recent?limit=0", "", token)
	assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_INPUT")
}

func TestDashboardFlow_DateRange(t *testing.T) {
	app := setupApp(t, false)
	token := app.login(t, "john@example.com")

	// Reversed bounds are swapped.
	rec := app.request("PUT", "/api/v1/date-range", `{"start":"2025-03-31","end":"2025-03-01"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rng := app.Store.State().DateRange
	if !rng.Start.Before(rng.End) {
		t.Errorf("expected normalized range, got %v to %v", rng.Start, rng.End)
	}

	rec = app.request("PUT", "/api/v1/date-range", `{"start":"March","end":"2025-03-01"}`, token)
	assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_INPUT")

	rec = app.request("POST", "/api/v1/date-range/preset", `{"preset":"week"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rng = app.Store.State().DateRange
	if days := rng.End.Sub(rng.Start).Hours() / 24; days != 7 {
		t.Errorf("expected a 7 day range, got %v days", days)
	}

	rec = app.request("POST", "/api/v1/date-range/preset", `{"preset":"fortnight"}`, token)
	assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_INPUT")

	rec = app.request("GET", "/api/v1/date-range", "", token)
	if _, ok := parseJSON(t, rec)["dateRange"].(map[string]interface{}); !ok {
		t.Errorf("expected dateRange object: %s", rec.Body.String())
	}
}

func TestDashboardFlow_ProfileStatsAreAllTime(t *testing.T) {
	app := setupApp(t, true)
	token := app.login(t, "john@example.com")

	rec := app.request("GET", "/api/v1/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stats := parseJSON(t, rec)["stats"].(map[string]interface{})
	if stats["income"].(float64) != 350000 || stats["expenses"].(float64) != 25080 {
		t.Errorf("unexpected seeded totals %v", stats)
	}
	if stats["transactionCount"].(float64) != 5 {
		t.Errorf("expected 5 seeded transactions, got %v", stats["transactionCount"])
	}
}

func TestExportFlow(t *testing.T) {
	app := setupApp(t, false)
	token := marchActivity(t, app)

	rec := app.request("GET", "/api/v1/export/records", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	workbook := parseJSON(t, rec)
	rows := workbook["transactions"].([]interface{})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows in range, got %d", len(rows))
	}
	if _, ok := rows[0].(map[string]interface{})["Transaction ID"]; !ok {
		t.Errorf("expected spreadsheet column names, got %v", rows[0])
	}
	if len(workbook["summary"].([]interface{})) == 0 {
		t.Error("expected summary metrics")
	}

	rec = app.request("GET", "/api/v1/export/report", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	report := parseJSON(t, rec)
	if report["userName"] != "John Doe" {
		t.Errorf("expected John Doe, got %v", report["userName"])
	}
	if report["totalRows"].(float64) != 3 {
		t.Errorf("expected 3 total rows, got %v", report["totalRows"])
	}

	var count int64
	app.DB.Table("audit_logs").Where("action = ?", "EXPORT_RECORDS").Count(&count)
	if count != 1 {
		t.Errorf("expected the export to be audited once, got %d", count)
	}
}
