package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/analytics"
	"expensetracker/internal/models"
	"expensetracker/internal/services"
)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID("1"))
	auth.GET("/date-range", handler.GetDateRange)
	auth.PUT("/date-range", handler.SetDateRange)
	auth.POST("/date-range/preset", handler.ApplyPreset)
	auth.GET("/dashboard/summary", handler.GetSummary)
	auth.GET("/dashboard/daily", handler.GetDailyTotals)
	auth.GET("/dashboard/categories", handler.GetCategoryBreakdown)
	auth.GET("/dashboard/recent", handler.GetRecentTransactions)
	return r
}

func TestDashboardHandler_SetDateRange(t *testing.T) {
	t.Run("reads bare dates in the configured location", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		var gotStart, gotEnd time.Time
		dashSvc := &mockDashboardService{
			setDateRangeFn: func(_ string, start, end time.Time) (models.DateRange, error) {
				gotStart, gotEnd = start, end
				return models.DateRange{Start: start, End: end}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dashSvc, loc))

		rec := doRequest(r, "PUT", "/date-range", `{"start":"2025-03-01","end":"2025-03-31T23:59:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotStart.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, loc)) {
			t.Errorf("unexpected start %v", gotStart)
		}
		if !gotEnd.Equal(time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)) {
			t.Errorf("unexpected end %v", gotEnd)
		}
		if _, ok := parseJSON(t, rec)["dateRange"]; !ok {
			t.Error("expected dateRange in response")
		}
	})

	t.Run("returns 400 on unparsable date", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}, time.UTC))

		rec := doRequest(r, "PUT", "/date-range", `{"start":"last week","end":"2025-03-31"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestDashboardHandler_ApplyPreset(t *testing.T) {
	t.Run("passes the preset", func(t *testing.T) {
		var got models.DatePreset
		dashSvc := &mockDashboardService{
			applyPresetFn: func(_ string, preset models.DatePreset) (models.DateRange, error) {
				got = preset
				return models.DateRange{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dashSvc, time.UTC))

		rec := doRequest(r, "POST", "/date-range/preset", `{"preset":"3months"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got != models.PresetThreeMonths {
			t.Errorf("expected 3months, got %q", got)
		}
	})

	t.Run("returns 400 on unknown preset", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}, time.UTC))

		rec := doRequest(r, "POST", "/date-range/preset", `{"preset":"decade"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	dashSvc := &mockDashboardService{
		getSummaryFn: func(string) (*services.DashboardSummary, error) {
			return &services.DashboardSummary{
				Summary:  analytics.Summary{Income: 300000, Expenses: 8550, Balance: 291450},
				Counts:   analytics.TypeCounts{Income: 1, Expense: 1},
				Currency: "USD",
			}, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(dashSvc, time.UTC))

	rec := doRequest(r, "GET", "/dashboard/summary", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["balance"].(float64) != 291450 {
		t.Errorf("unexpected balance %v", result["balance"])
	}
	if result["currency"] != "USD" {
		t.Errorf("unexpected currency %v", result["currency"])
	}
}

func TestDashboardHandler_Series(t *testing.T) {
	dashSvc := &mockDashboardService{
		getDailyTotalsFn: func(string) ([]analytics.DailyTotal, error) {
			return []analytics.DailyTotal{{Label: "Mar 10"}, {Label: "Mar 11"}}, nil
		},
		getCategoryBreakdownFn: func(string) ([]analytics.CategoryTotal, error) {
			return []analytics.CategoryTotal{{CategoryName: "Travel", Total: 500}}, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(dashSvc, time.UTC))

	rec := doRequest(r, "GET", "/dashboard/daily", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if days := parseJSON(t, rec)["days"].([]interface{}); len(days) != 2 {
		t.Errorf("expected 2 days, got %d", len(days))
	}

	rec = doRequest(r, "GET", "/dashboard/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cats := parseJSON(t, rec)["categories"].([]interface{})
	if len(cats) != 1 || cats[0].(map[string]interface{})["categoryName"] != "Travel" {
		t.Errorf("unexpected categories %v", cats)
	}
}

func TestDashboardHandler_GetRecentTransactions(t *testing.T) {
	t.Run("uses the default limit", func(t *testing.T) {
		got := 0
		dashSvc := &mockDashboardService{
			getRecentTransactionsFn: func(_ string, limit int) ([]models.Transaction, error) {
				got = limit
				return nil, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dashSvc, time.UTC))

		rec := doRequest(r, "GET", "/dashboard/recent", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got != services.DefaultRecentLimit {
			t.Errorf("expected default limit, got %d", got)
		}
	})

	t.Run("honours limit", func(t *testing.T) {
		got := 0
		dashSvc := &mockDashboardService{
			getRecentTransactionsFn: func(_ string, limit int) ([]models.Transaction, error) {
				got = limit
				return nil, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(dashSvc, time.UTC))

		doRequest(r, "GET", "/dashboard/recent?limit=3", "")

		if got != 3 {
			t.Errorf("expected limit 3, got %d", got)
		}
	})

	for _, limit := range []string{"0", "101", "ten"} {
		t.Run("returns 400 on limit "+limit, func(t *testing.T) {
			r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}, time.UTC))

			rec := doRequest(r, "GET", "/dashboard/recent?limit="+limit, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}
