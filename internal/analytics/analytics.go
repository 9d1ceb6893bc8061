// Package analytics derives filtered transaction sets and financial
// summaries from the application state. All functions are pure.
package analytics

import (
	"sort"
	"time"

	"expensetracker/internal/models"
)

// UnknownCategory is the name used for transactions whose category does not resolve.
const UnknownCategory = "Unknown"

// UnknownColor is the colour used for the UnknownCategory bucket.
const UnknownColor = "#6B7280"

// Summary holds income, expense and balance totals in minor units.
type Summary struct {
	Income   int64 `json:"income"`
	Expenses int64 `json:"expenses"`
	Balance  int64 `json:"balance"`
}

// Combine returns the summary of the union of the two underlying sets.
func (s Summary) Combine(o Summary) Summary {
	return Summary{
		Income:   s.Income + o.Income,
		Expenses: s.Expenses + o.Expenses,
		Balance:  s.Balance + o.Balance,
	}
}

// TypeCounts counts transactions per type.
type TypeCounts struct {
	Income  int `json:"income"`
	Expense int `json:"expense"`
}

// DailyTotal is the per-day aggregate of a time series.
type DailyTotal struct {
	Day      time.Time `json:"day"`
	Label    string    `json:"label"`
	Income   int64     `json:"income"`
	Expenses int64     `json:"expenses"`
	Balance  int64     `json:"balance"`
}

// CategoryTotal is the expense total of one category bucket.
type CategoryTotal struct {
	CategoryName string `json:"categoryName"`
	Total        int64  `json:"total"`
	Color        string `json:"color"`
}

// Day truncates t to midnight of its calendar day in loc. A nil loc means UTC.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// FilterByRange keeps the transactions owned by userID whose day falls
// within the inclusive day range. Input order is preserved.
func FilterByRange(txns []models.Transaction, rng models.DateRange, userID string, loc *time.Location) []models.Transaction {
	start := Day(rng.Start, loc)
	end := Day(rng.End, loc)

	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.UserID != userID {
			continue
		}
		d := Day(t.Date, loc)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterByUser keeps the transactions owned by userID.
func FilterByUser(txns []models.Transaction, userID string) []models.Transaction {
	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// Summarize totals income and expenses. An empty input yields zeros.
func Summarize(txns []models.Transaction) Summary {
	var s Summary
	for _, t := range txns {
		switch t.Type {
		case models.TransactionTypeIncome:
			s.Income += t.Amount
		case models.TransactionTypeExpense:
			s.Expenses += t.Amount
		}
	}
	s.Balance = s.Income - s.Expenses
	return s
}

// Counts returns the number of income and expense transactions.
func Counts(txns []models.Transaction) TypeCounts {
	var c TypeCounts
	for _, t := range txns {
		switch t.Type {
		case models.TransactionTypeIncome:
			c.Income++
		case models.TransactionTypeExpense:
			c.Expense++
		}
	}
	return c
}

// GroupByDay returns one entry per calendar day from the earliest to the
// latest transaction, inclusive, including days without transactions.
func GroupByDay(txns []models.Transaction, loc *time.Location) []DailyTotal {
	if len(txns) == 0 {
		return []DailyTotal{}
	}

	byDay := make(map[string]*DailyTotal)
	first := Day(txns[0].Date, loc)
	last := first
	for _, t := range txns {
		d := Day(t.Date, loc)
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
		key := d.Format(time.DateOnly)
		total, ok := byDay[key]
		if !ok {
			total = &DailyTotal{}
			byDay[key] = total
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			total.Income += t.Amount
		case models.TransactionTypeExpense:
			total.Expenses += t.Amount
		}
	}

	var out []DailyTotal
	// AddDate keeps midnight across DST changes, unlike adding 24h.
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		entry := DailyTotal{Day: d, Label: d.Format("Jan 02")}
		if total, ok := byDay[d.Format(time.DateOnly)]; ok {
			entry.Income = total.Income
			entry.Expenses = total.Expenses
		}
		entry.Balance = entry.Income - entry.Expenses
		out = append(out, entry)
	}
	return out
}

// GroupByCategory totals expense transactions per category name, sorted by
// total descending. Transactions with an unresolved category are grouped
// under UnknownCategory.
func GroupByCategory(txns []models.Transaction, cats []models.Category) []CategoryTotal {
	byID := make(map[string]models.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	totals := make(map[string]*CategoryTotal)
	var order []string
	for _, t := range txns {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		name, color := UnknownCategory, UnknownColor
		if c, ok := byID[t.CategoryID]; ok {
			name, color = c.Name, c.Color
		}
		total, ok := totals[name]
		if !ok {
			total = &CategoryTotal{CategoryName: name, Color: color}
			totals[name] = total
			order = append(order, name)
		}
		total.Total += t.Amount
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *totals[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out
}

// Recent returns at most n transactions, newest first.
func Recent(txns []models.Transaction, n int) []models.Transaction {
	out := append([]models.Transaction(nil), txns...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []models.Transaction{}
	}
	return out
}

// CategoryName resolves a category id to its name, or UnknownCategory.
func CategoryName(cats []models.Category, id string) string {
	for _, c := range cats {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownCategory
}
