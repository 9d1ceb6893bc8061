package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/analytics"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"
)

// --- mock services ---

type mockSessionService struct {
	loginFn             func(email, password string) (*models.User, error)
	logoutFn            func()
	currentUserFn       func() (*models.User, error)
	updatePreferencesFn func(userID string, prefs models.Preferences) (*models.User, error)
	usersFn             func() []models.User
}

func (m *mockSessionService) Login(email, password string) (*models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(email, password)
	}
	return &models.User{ID: "1", Email: email}, nil
}

func (m *mockSessionService) Logout() {
	if m.logoutFn != nil {
		m.logoutFn()
	}
}

func (m *mockSessionService) CurrentUser() (*models.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn()
	}
	return &models.User{ID: "1"}, nil
}

func (m *mockSessionService) UpdatePreferences(userID string, prefs models.Preferences) (*models.User, error) {
	if m.updatePreferencesFn != nil {
		return m.updatePreferencesFn(userID, prefs)
	}
	return &models.User{ID: userID, Preferences: prefs}, nil
}

func (m *mockSessionService) Users() []models.User {
	if m.usersFn != nil {
		return m.usersFn()
	}
	return nil
}

var _ services.SessionServicer = (*mockSessionService)(nil)

type mockTransactionService struct {
	createTransactionFn   func(userID string, in services.TransactionInput) (*models.Transaction, error)
	getUserTransactionsFn func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn  func(userID, transactionID string) (*models.Transaction, error)
	updateTransactionFn   func(userID, transactionID string, in services.TransactionInput) (*models.Transaction, error)
	deleteTransactionFn   func(userID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(userID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockCategoryService struct {
	createCategoryFn  func(userID, name string, categoryType models.CategoryType, color string) (*models.Category, error)
	getCategoriesFn   func(userID string, forType *models.TransactionType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	getCategoryByIDFn func(userID, categoryID string) (*models.Category, error)
	updateCategoryFn  func(userID, categoryID string, upd services.CategoryUpdate) (*models.Category, error)
	deleteCategoryFn  func(userID, categoryID string) error
}

func (m *mockCategoryService) CreateCategory(userID, name string, categoryType models.CategoryType, color string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, name, categoryType, color)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetCategories(userID string, forType *models.TransactionType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn(userID, forType, page)
	}
	resp := pagination.NewPageResponse([]models.Category{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(userID, categoryID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(userID, categoryID string, upd services.CategoryUpdate) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(userID, categoryID, upd)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

type mockDashboardService struct {
	getDateRangeFn          func(userID string) (models.DateRange, error)
	setDateRangeFn          func(userID string, start, end time.Time) (models.DateRange, error)
	applyPresetFn           func(userID string, preset models.DatePreset) (models.DateRange, error)
	getSummaryFn            func(userID string) (*services.DashboardSummary, error)
	getDailyTotalsFn        func(userID string) ([]analytics.DailyTotal, error)
	getCategoryBreakdownFn  func(userID string) ([]analytics.CategoryTotal, error)
	getRecentTransactionsFn func(userID string, limit int) ([]models.Transaction, error)
	getProfileStatsFn       func(userID string) (*services.ProfileStats, error)
}

func (m *mockDashboardService) GetDateRange(userID string) (models.DateRange, error) {
	if m.getDateRangeFn != nil {
		return m.getDateRangeFn(userID)
	}
	return models.DateRange{}, nil
}

func (m *mockDashboardService) SetDateRange(userID string, start, end time.Time) (models.DateRange, error) {
	if m.setDateRangeFn != nil {
		return m.setDateRangeFn(userID, start, end)
	}
	return models.DateRange{Start: start, End: end}.Normalize(), nil
}

func (m *mockDashboardService) ApplyPreset(userID string, preset models.DatePreset) (models.DateRange, error) {
	if m.applyPresetFn != nil {
		return m.applyPresetFn(userID, preset)
	}
	return models.DateRange{}, nil
}

func (m *mockDashboardService) GetSummary(userID string) (*services.DashboardSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID)
	}
	return &services.DashboardSummary{}, nil
}

func (m *mockDashboardService) GetDailyTotals(userID string) ([]analytics.DailyTotal, error) {
	if m.getDailyTotalsFn != nil {
		return m.getDailyTotalsFn(userID)
	}
	return []analytics.DailyTotal{}, nil
}

func (m *mockDashboardService) GetCategoryBreakdown(userID string) ([]analytics.CategoryTotal, error) {
	if m.getCategoryBreakdownFn != nil {
		return m.getCategoryBreakdownFn(userID)
	}
	return []analytics.CategoryTotal{}, nil
}

func (m *mockDashboardService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if m.getRecentTransactionsFn != nil {
		return m.getRecentTransactionsFn(userID, limit)
	}
	return []models.Transaction{}, nil
}

func (m *mockDashboardService) GetProfileStats(userID string) (*services.ProfileStats, error) {
	if m.getProfileStatsFn != nil {
		return m.getProfileStatsFn(userID)
	}
	return &services.ProfileStats{}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

type mockExportService struct {
	exportRecordsFn func(userID string) (*services.ExportWorkbook, error)
	exportReportFn  func(userID string) (*analytics.Report, error)
}

func (m *mockExportService) ExportRecords(userID string) (*services.ExportWorkbook, error) {
	if m.exportRecordsFn != nil {
		return m.exportRecordsFn(userID)
	}
	return &services.ExportWorkbook{}, nil
}

func (m *mockExportService) ExportReport(userID string) (*analytics.Report, error) {
	if m.exportReportFn != nil {
		return m.exportReportFn(userID)
	}
	return &analytics.Report{}, nil
}

var _ services.ExportServicer = (*mockExportService)(nil)

type mockMaintenanceService struct {
	snapshotFn func() models.AppState
	resetFn    func()
	importFn   func(payload []byte) ([]string, error)
}

func (m *mockMaintenanceService) Snapshot() models.AppState {
	if m.snapshotFn != nil {
		return m.snapshotFn()
	}
	return models.AppState{}
}

func (m *mockMaintenanceService) Reset() {
	if m.resetFn != nil {
		m.resetFn()
	}
}

func (m *mockMaintenanceService) Import(payload []byte) ([]string, error) {
	if m.importFn != nil {
		return m.importFn(payload)
	}
	return nil, nil
}

var _ services.MaintenanceServicer = (*mockMaintenanceService)(nil)

type auditEntry struct {
	userID, action, resourceType, resourceID string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, _ map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{userID, action, resourceType, resourceID})
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func doRequestWithHeader(r *gin.Engine, method, path, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(header, value)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}
