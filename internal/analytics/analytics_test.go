package analytics

import (
	"testing"
	"time"

	"expensetracker/internal/models"
)

func day(d int, hour int) time.Time {
	return time.Date(2025, 3, d, hour, 30, 0, 0, time.UTC)
}

func newTxn(id, userID string, typ models.TransactionType, amount int64, date time.Time, categoryID string) models.Transaction {
	return models.Transaction{
		ID:          id,
		Amount:      amount,
		Type:        typ,
		Description: "txn " + id,
		Date:        date,
		CategoryID:  categoryID,
		PaymentMode: models.PaymentModeOnline,
		UserID:      userID,
	}
}

func TestFilterByRange(t *testing.T) {
	txns := []models.Transaction{
		newTxn("before", "1", models.TransactionTypeIncome, 10, day(9, 23), "7"),
		newTxn("start", "1", models.TransactionTypeIncome, 10, day(10, 0), "7"),
		newTxn("other-user", "2", models.TransactionTypeIncome, 10, day(11, 12), "7"),
		newTxn("end-late", "1", models.TransactionTypeExpense, 10, day(12, 23), "1"),
		newTxn("after", "1", models.TransactionTypeExpense, 10, day(13, 0), "1"),
	}
	// Range bounds carry times of day that must be ignored.
	rng := models.DateRange{Start: day(10, 18), End: day(12, 1)}

	got := FilterByRange(txns, rng, "1", time.UTC)

	if len(got) != 2 || got[0].ID != "start" || got[1].ID != "end-late" {
		t.Fatalf("expected [start end-late], got %+v", got)
	}
	for _, txn := range got {
		if txn.UserID != "1" {
			t.Errorf("unexpected owner %q", txn.UserID)
		}
	}
}

func TestFilterByRange_Location(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// 2025-03-11 20:00 UTC is 2025-03-12 06:00 in UTC+10.
	txn := newTxn("a", "1", models.TransactionTypeIncome, 1, time.Date(2025, 3, 11, 20, 0, 0, 0, time.UTC), "7")
	rng := models.DateRange{Start: time.Date(2025, 3, 12, 0, 0, 0, 0, loc), End: time.Date(2025, 3, 12, 0, 0, 0, 0, loc)}

	if got := FilterByRange([]models.Transaction{txn}, rng, "1", loc); len(got) != 1 {
		t.Errorf("expected transaction to fall on the 12th in UTC+10, got %d", len(got))
	}
	if got := FilterByRange([]models.Transaction{txn}, rng, "1", nil); len(got) != 0 {
		t.Errorf("expected transaction to fall on the 11th in UTC, got %d", len(got))
	}
}

func TestSummarize(t *testing.T) {
	t.Run("empty input yields zeros", func(t *testing.T) {
		if got := Summarize(nil); got != (Summary{}) {
			t.Errorf("expected zero summary, got %+v", got)
		}
	})

	t.Run("single income", func(t *testing.T) {
		got := Summarize([]models.Transaction{newTxn("a", "1", models.TransactionTypeIncome, 100, day(1, 0), "7")})
		if got.Income != 100 || got.Balance != 100 || got.Expenses != 0 {
			t.Errorf("unexpected summary %+v", got)
		}
	})

	t.Run("additive over disjoint sets", func(t *testing.T) {
		a := []models.Transaction{
			newTxn("a1", "1", models.TransactionTypeIncome, 300000, day(1, 0), "7"),
			newTxn("a2", "1", models.TransactionTypeExpense, 8550, day(2, 0), "1"),
		}
		b := []models.Transaction{
			newTxn("b1", "1", models.TransactionTypeExpense, 12000, day(3, 0), "2"),
			newTxn("b2", "1", models.TransactionTypeIncome, 50000, day(4, 0), "8"),
			newTxn("b3", "1", models.TransactionTypeExpense, 4530, day(5, 0), "1"),
		}
		union := append(append([]models.Transaction{}, a...), b...)

		if got, want := Summarize(union), Summarize(a).Combine(Summarize(b)); got != want {
			t.Errorf("Summarize(A∪B) = %+v, want %+v", got, want)
		}
	})
}

func TestCounts(t *testing.T) {
	got := Counts([]models.Transaction{
		newTxn("a", "1", models.TransactionTypeIncome, 1, day(1, 0), "7"),
		newTxn("b", "1", models.TransactionTypeExpense, 1, day(1, 0), "1"),
		newTxn("c", "1", models.TransactionTypeExpense, 1, day(1, 0), "1"),
	})
	if got.Income != 1 || got.Expense != 2 {
		t.Errorf("unexpected counts %+v", got)
	}
}

func TestGroupByDay(t *testing.T) {
	t.Run("gap day is zero filled", func(t *testing.T) {
		txns := []models.Transaction{
			newTxn("c", "1", models.TransactionTypeExpense, 40, day(12, 9), "1"),
			newTxn("a", "1", models.TransactionTypeIncome, 100, day(10, 8), "7"),
			newTxn("b", "1", models.TransactionTypeExpense, 30, day(10, 20), "1"),
		}

		got := GroupByDay(txns, time.UTC)

		if len(got) != 3 {
			t.Fatalf("expected 3 entries, got %d: %+v", len(got), got)
		}
		if !got[0].Day.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected first day 2025-03-10, got %v", got[0].Day)
		}
		if got[0].Income != 100 || got[0].Expenses != 30 || got[0].Balance != 70 {
			t.Errorf("unexpected first entry %+v", got[0])
		}
		if got[1].Income != 0 || got[1].Expenses != 0 || got[1].Balance != 0 {
			t.Errorf("expected empty gap day, got %+v", got[1])
		}
		if got[2].Expenses != 40 || got[2].Label != "Mar 12" {
			t.Errorf("unexpected last entry %+v", got[2])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := GroupByDay(nil, nil); len(got) != 0 {
			t.Errorf("expected no entries, got %+v", got)
		}
	})
}

func TestGroupByCategory(t *testing.T) {
	cats := models.DefaultCategories()
	txns := []models.Transaction{
		newTxn("a", "1", models.TransactionTypeExpense, 8550, day(1, 0), "1"),
		newTxn("b", "1", models.TransactionTypeExpense, 12000, day(1, 0), "2"),
		newTxn("c", "1", models.TransactionTypeExpense, 4530, day(1, 0), "1"),
		newTxn("d", "1", models.TransactionTypeExpense, 500, day(1, 0), "missing"),
		newTxn("e", "1", models.TransactionTypeIncome, 300000, day(1, 0), "7"),
	}

	got := GroupByCategory(txns, cats)

	if len(got) != 3 {
		t.Fatalf("expected 3 buckets, got %+v", got)
	}
	if got[0].CategoryName != "Food & Dining" || got[0].Total != 13080 || got[0].Color != "#FF6B6B" {
		t.Errorf("unexpected first bucket %+v", got[0])
	}
	if got[1].CategoryName != "Bills & Utilities" || got[1].Total != 12000 {
		t.Errorf("unexpected second bucket %+v", got[1])
	}
	if got[2].CategoryName != UnknownCategory || got[2].Color != UnknownColor {
		t.Errorf("expected unknown bucket last, got %+v", got[2])
	}
}

func TestRecent(t *testing.T) {
	txns := []models.Transaction{
		newTxn("old", "1", models.TransactionTypeIncome, 1, day(1, 0), "7"),
		newTxn("new", "1", models.TransactionTypeIncome, 1, day(3, 0), "7"),
		newTxn("mid", "1", models.TransactionTypeIncome, 1, day(2, 0), "7"),
	}

	got := Recent(txns, 2)

	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "mid" {
		t.Errorf("expected [new mid], got %+v", got)
	}
	if txns[0].ID != "old" {
		t.Error("Recent must not reorder its input")
	}
}
