package services

import (
	"time"

	"expensetracker/internal/analytics"
	"expensetracker/internal/models"
	"expensetracker/internal/state"
)

// exportService builds the export inputs for the selected date range.
type exportService struct {
	store state.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

// NewExportService creates a new ExportServicer. A nil loc means UTC.
func NewExportService(store state.Dispatcher, loc *time.Location) ExportServicer {
	if loc == nil {
		loc = time.UTC
	}
	return &exportService{store: store, loc: loc, now: time.Now}
}

func (s *exportService) ExportRecords(userID string) (*ExportWorkbook, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	txns := s.inRange(st, userID)
	return &ExportWorkbook{
		Transactions: analytics.ExportRecords(txns, st.Categories, s.loc),
		Summary:      analytics.ExportMetrics(txns),
	}, nil
}

func (s *exportService) ExportReport(userID string) (*analytics.Report, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	report := analytics.BuildReport(st.CurrentUser, s.inRange(st, userID), st.Categories, s.now(), s.loc)
	return &report, nil
}

func (s *exportService) inRange(st models.AppState, userID string) []models.Transaction {
	return analytics.FilterByRange(st.Transactions, st.DateRange, userID, s.loc)
}
