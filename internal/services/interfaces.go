package services

import (
	"time"

	"expensetracker/internal/analytics"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
)

// Authenticator verifies sign-in credentials.
type Authenticator interface {
	Authenticate(email, password string) (models.User, bool)
	Users() []models.User
}

// SessionServicer defines the contract for sign-in and the current principal.
type SessionServicer interface {
	Login(email, password string) (*models.User, error)
	Logout()
	CurrentUser() (*models.User, error)
	UpdatePreferences(userID string, prefs models.Preferences) (*models.User, error)
	Users() []models.User
}

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	Amount      int64
	Type        models.TransactionType
	Description string
	Date        time.Time
	CategoryID  string
	Label       string
	PaymentMode models.PaymentMode
	ProofURL    string
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate    *time.Time
	ToDate      *time.Time
	Type        *models.TransactionType
	CategoryID  *string
	PaymentMode *models.PaymentMode
	MinAmount   *int64
	MaxAmount   *int64
	Search      string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// CategoryUpdate holds the category fields to change. Nil fields are kept.
type CategoryUpdate struct {
	Name  *string
	Type  *models.CategoryType
	Color *string
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, color string) (*models.Category, error)
	GetCategories(userID string, forType *models.TransactionType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, upd CategoryUpdate) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// DashboardSummary is the headline figures for the selected date range.
type DashboardSummary struct {
	analytics.Summary
	Counts    analytics.TypeCounts `json:"counts"`
	DateRange models.DateRange     `json:"dateRange"`
	Currency  string               `json:"currency"`
}

// ProfileStats is the all-time activity of a user.
type ProfileStats struct {
	analytics.Summary
	TransactionCount int `json:"transactionCount"`
}

// DashboardServicer defines the contract for the date-range scoped views.
type DashboardServicer interface {
	GetDateRange(userID string) (models.DateRange, error)
	SetDateRange(userID string, start, end time.Time) (models.DateRange, error)
	ApplyPreset(userID string, preset models.DatePreset) (models.DateRange, error)
	GetSummary(userID string) (*DashboardSummary, error)
	GetDailyTotals(userID string) ([]analytics.DailyTotal, error)
	GetCategoryBreakdown(userID string) ([]analytics.CategoryTotal, error)
	GetRecentTransactions(userID string, limit int) ([]models.Transaction, error)
	GetProfileStats(userID string) (*ProfileStats, error)
}

// ExportWorkbook is the tabular export of the selected date range: one row
// per transaction plus the summary metrics.
type ExportWorkbook struct {
	Transactions []analytics.Record `json:"transactions"`
	Summary      []analytics.Metric `json:"summary"`
}

// ExportServicer defines the contract for data export.
type ExportServicer interface {
	ExportRecords(userID string) (*ExportWorkbook, error)
	ExportReport(userID string) (*analytics.Report, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

// MaintenanceServicer defines the contract for whole-state operations used by
// operators.
type MaintenanceServicer interface {
	Snapshot() models.AppState
	Reset()
	Import(payload []byte) (issues []string, err error)
}
