package analytics

import (
	"strings"
	"time"

	"expensetracker/internal/models"
)

// ReportRowLimit bounds the transaction table handed to document writers.
const ReportRowLimit = 50

// Record is the flat row handed to spreadsheet writers.
type Record struct {
	TransactionID string `json:"Transaction ID"`
	Date          string `json:"Date"`
	Type          string `json:"Type"`
	Amount        int64  `json:"Amount"`
	Description   string `json:"Description"`
	Category      string `json:"Category"`
	PaymentMode   string `json:"Payment Mode"`
	Label         string `json:"Label"`
	ProofURL      string `json:"Proof URL"`
}

// Metric is one line of the summary sheet.
type Metric struct {
	Metric string `json:"Metric"`
	Value  int64  `json:"Value"`
}

// Report is the input of document writers: a summary plus a bounded table.
type Report struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generatedAt"`
	UserName    string    `json:"userName"`
	Currency    string    `json:"currency"`
	Summary     Summary   `json:"summary"`
	Rows        []Record  `json:"rows"`
	TotalRows   int       `json:"totalRows"`
}

// ExportRecords flattens transactions into spreadsheet rows. Dates are the
// calendar day in loc; a nil loc means UTC.
func ExportRecords(txns []models.Transaction, cats []models.Category, loc *time.Location) []Record {
	if loc == nil {
		loc = time.UTC
	}
	out := make([]Record, 0, len(txns))
	for _, t := range txns {
		out = append(out, Record{
			TransactionID: t.ID,
			Date:          t.Date.In(loc).Format(time.DateOnly),
			Type:          capitalize(string(t.Type)),
			Amount:        t.Amount,
			Description:   t.Description,
			Category:      CategoryName(cats, t.CategoryID),
			PaymentMode:   capitalize(string(t.PaymentMode)),
			Label:         t.Label,
			ProofURL:      t.ProofURL,
		})
	}
	return out
}

// ExportMetrics returns the summary sheet for txns.
func ExportMetrics(txns []models.Transaction) []Metric {
	s := Summarize(txns)
	return []Metric{
		{Metric: "Total Transactions", Value: int64(len(txns))},
		{Metric: "Total Income", Value: s.Income},
		{Metric: "Total Expenses", Value: s.Expenses},
		{Metric: "Net Balance", Value: s.Balance},
	}
}

// BuildReport assembles the document writer input. user may be nil.
func BuildReport(user *models.User, txns []models.Transaction, cats []models.Category, now time.Time, loc *time.Location) Report {
	r := Report{
		Title:       "Expense Tracker Report",
		GeneratedAt: now,
		UserName:    "Unknown",
		Currency:    "USD",
		Summary:     Summarize(txns),
		TotalRows:   len(txns),
	}
	if user != nil {
		r.UserName = user.Name
		if user.Preferences.Currency != "" {
			r.Currency = user.Preferences.Currency
		}
	}
	rows := txns
	if len(rows) > ReportRowLimit {
		rows = rows[:ReportRowLimit]
	}
	r.Rows = ExportRecords(rows, cats, loc)
	return r
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
