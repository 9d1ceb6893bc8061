package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"expensetracker/internal/auth"
	"expensetracker/internal/bootstrap"
	"expensetracker/internal/handlers"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/models"
	"expensetracker/internal/persistence"
	"expensetracker/internal/services"
	"expensetracker/internal/state"
	"expensetracker/internal/validator"
)

const (
	testAdminKey = "test-admin-key"
	testStateKey = "integration-state"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Store   *state.Store
	Adapter persistence.Adapter
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	// The mirror and the audit log write from different goroutines.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.StateSnapshot{}, &models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite. The demo transactions are seeded when seed is set.
func setupApp(t *testing.T, seed bool) *testApp {
	t.Helper()
	return setupAppOn(t, setupIsolatedDB(t), seed)
}

// setupAppOn builds the stack on db, restoring whatever record it holds.
func setupAppOn(t *testing.T, db *gorm.DB, seed bool) *testApp {
	t.Helper()

	authenticator, err := auth.NewAuthenticator(bcrypt.MinCost, auth.DemoCredentials()...)
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	adapter := persistence.NewAdapter(persistence.NewGormSlot(db, testStateKey))
	mirror := persistence.NewMirror(adapter)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = mirror.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	now := time.Now()
	store := state.NewStore(state.Initial(now))
	store.Subscribe(mirror.Observe)
	bootstrap.Load(ctx, store, adapter, seed, now)

	// Services
	sessionService := services.NewSessionService(store, authenticator)
	transactionService := services.NewTransactionService(store)
	categoryService := services.NewCategoryService(store)
	dashboardService := services.NewDashboardService(store, time.UTC)
	exportService := services.NewExportService(store, time.UTC)
	maintenanceService := services.NewMaintenanceService(store)
	auditService := services.NewAuditService(db)

	tokens := middleware.NewTokenManager("integration-secret", time.Hour)

	router := handlers.NewRouter(handlers.Handlers{
		Auth:         handlers.NewAuthHandler(sessionService, tokens, auditService),
		Profile:      handlers.NewProfileHandler(sessionService, dashboardService, auditService),
		Transactions: handlers.NewTransactionHandler(transactionService, auditService, time.UTC),
		Categories:   handlers.NewCategoryHandler(categoryService, auditService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService, time.UTC),
		Export:       handlers.NewExportHandler(exportService, auditService),
		Admin:        handlers.NewAdminHandler(maintenanceService, sessionService, auditService),
	},
		middleware.AuthMiddleware(tokens, sessionService),
		middleware.AdminKeyMiddleware(testAdminKey),
	)

	return &testApp{DB: db, Router: router, Store: store, Adapter: adapter}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// adminRequest makes a request to an operator route.
func (app *testApp) adminRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAdminKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// login signs in as one of the demo users and returns the token.
func (app *testApp) login(t *testing.T, email string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, auth.DemoPassword)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// addTransaction creates a transaction and returns its id.
func (app *testApp) addTransaction(t *testing.T, token, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	txn := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return txn["id"].(string)
}

// setMarch selects March 2025 as the date range.
func (app *testApp) setMarch(t *testing.T, token string) {
	t.Helper()
	rec := app.request("PUT", "/api/v1/date-range", `{"start":"2025-03-01","end":"2025-03-31"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("set date range failed: %d %s", rec.Code, rec.Body.String())
	}
}

// assertErrorCode checks the code of an error response.
func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != code {
		t.Errorf("expected %s, got %v", code, errObj["code"])
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
