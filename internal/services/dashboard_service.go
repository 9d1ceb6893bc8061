package services

import (
	"time"

	"expensetracker/internal/analytics"
	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/state"
)

// DefaultRecentLimit is the number of transactions shown on the dashboard.
const DefaultRecentLimit = 10

// dashboardService answers the date-range scoped views. Day boundaries are
// computed in loc.
type dashboardService struct {
	store state.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

// NewDashboardService creates a new DashboardServicer. A nil loc means UTC.
func NewDashboardService(store state.Dispatcher, loc *time.Location) DashboardServicer {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{store: store, loc: loc, now: time.Now}
}

func (s *dashboardService) GetDateRange(userID string) (models.DateRange, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return models.DateRange{}, err
	}
	return st.DateRange, nil
}

// SetDateRange selects an explicit range. A reversed range is swapped.
func (s *dashboardService) SetDateRange(userID string, start, end time.Time) (models.DateRange, error) {
	if _, err := requireSession(s.store, userID); err != nil {
		return models.DateRange{}, err
	}
	if start.IsZero() || end.IsZero() {
		return models.DateRange{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "start and end are required")
	}

	s.store.Dispatch(state.SetDateRange{Range: models.DateRange{Start: start, End: end}})
	return s.store.State().DateRange, nil
}

// ApplyPreset selects a range ending now.
func (s *dashboardService) ApplyPreset(userID string, preset models.DatePreset) (models.DateRange, error) {
	if _, err := requireSession(s.store, userID); err != nil {
		return models.DateRange{}, err
	}
	if !preset.Valid() {
		return models.DateRange{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported date preset")
	}

	s.store.Dispatch(state.SetDateRange{Range: preset.Range(s.now())})
	return s.store.State().DateRange, nil
}

func (s *dashboardService) GetSummary(userID string) (*DashboardSummary, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	txns := s.inRange(st, userID)
	return &DashboardSummary{
		Summary:   analytics.Summarize(txns),
		Counts:    analytics.Counts(txns),
		DateRange: st.DateRange,
		Currency:  st.CurrentUser.Preferences.Currency,
	}, nil
}

func (s *dashboardService) GetDailyTotals(userID string) ([]analytics.DailyTotal, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}
	return analytics.GroupByDay(s.inRange(st, userID), s.loc), nil
}

func (s *dashboardService) GetCategoryBreakdown(userID string) ([]analytics.CategoryTotal, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}
	return analytics.GroupByCategory(s.inRange(st, userID), st.Categories), nil
}

// GetRecentTransactions returns the newest transactions in the selected
// range. A non-positive limit means DefaultRecentLimit.
func (s *dashboardService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return analytics.Recent(s.inRange(st, userID), limit), nil
}

// GetProfileStats summarizes every transaction of the user regardless of
// the selected range.
func (s *dashboardService) GetProfileStats(userID string) (*ProfileStats, error) {
	st, err := requireSession(s.store, userID)
	if err != nil {
		return nil, err
	}

	txns := analytics.FilterByUser(st.Transactions, userID)
	return &ProfileStats{
		Summary:          analytics.Summarize(txns),
		TransactionCount: len(txns),
	}, nil
}

func (s *dashboardService) inRange(st models.AppState, userID string) []models.Transaction {
	return analytics.FilterByRange(st.Transactions, st.DateRange, userID, s.loc)
}
