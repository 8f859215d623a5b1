package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/advokatia/go-finance-backend/internal/domain"
)

func TestReportSummary(t *testing.T) {
	db := newTestDB(t)
	txSvc := NewTransactionService(db)
	rptSvc := NewReportService(db)
	ctx := context.Background()

	mk := func(kind, amount string, due time.Time, paid bool) {
		t.Helper()
		tx, err := txSvc.Create(ctx, "u1", CreateTransactionInput{
			Kind:        kind,
			Description: "entry",
			Amount:      decimal.RequireFromString(amount),
			DueDate:     due,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if paid {
			if err := txSvc.MarkPaid(ctx, "u1", tx.ID, due); err != nil {
				t.Fatalf("pay: %v", err)
			}
		}
	}

	mk(domain.KindIncome, "1000.50", day(2024, time.March, 5), true)
	mk(domain.KindIncome, "200.25", day(2024, time.March, 20), false)
	mk(domain.KindExpense, "300.10", day(2024, time.March, 10), false)
	mk(domain.KindExpense, "99.99", day(2024, time.April, 2), false)   // outside window
	mk(domain.KindIncome, "50.00", day(2024, time.February, 28), true) // outside window

	sum, err := rptSvc.Summary(ctx, "u1", day(2024, time.March, 1), day(2024, time.March, 31))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if sum.Count != 3 {
		t.Fatalf("count = %d; want 3", sum.Count)
	}
	if want := decimal.RequireFromString("1200.75"); !sum.Income.Equal(want) {
		t.Fatalf("income = %s; want %s", sum.Income, want)
	}
	if want := decimal.RequireFromString("300.10"); !sum.Expense.Equal(want) {
		t.Fatalf("expense = %s; want %s", sum.Expense, want)
	}
	if want := decimal.RequireFromString("900.65"); !sum.Balance.Equal(want) {
		t.Fatalf("balance = %s; want %s", sum.Balance, want)
	}
	if want := decimal.RequireFromString("200.25"); !sum.PendingIncome.Equal(want) {
		t.Fatalf("pending income = %s; want %s", sum.PendingIncome, want)
	}
	if want := decimal.RequireFromString("300.10"); !sum.PendingExpense.Equal(want) {
		t.Fatalf("pending expense = %s; want %s", sum.PendingExpense, want)
	}
}

func TestReportSummary_NoWindowTotalsEverything(t *testing.T) {
	db := newTestDB(t)
	txSvc := NewTransactionService(db)
	rptSvc := NewReportService(db)
	ctx := context.Background()

	for _, due := range []time.Time{
		day(2024, time.January, 5),
		day(2024, time.June, 20),
		day(2025, time.December, 31),
	} {
		if _, err := txSvc.Create(ctx, "u1", CreateTransactionInput{
			Kind:        domain.KindIncome,
			Description: "entry",
			Amount:      decimal.RequireFromString("100.00"),
			DueDate:     due,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	sum, err := rptSvc.Summary(ctx, "u1", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Count != 3 {
		t.Fatalf("count = %d; want every transaction when no window is given", sum.Count)
	}
	if want := decimal.RequireFromString("300.00"); !sum.Income.Equal(want) {
		t.Fatalf("income = %s; want %s", sum.Income, want)
	}
}

func TestReportSummary_HalfOpenWindow(t *testing.T) {
	db := newTestDB(t)
	txSvc := NewTransactionService(db)
	rptSvc := NewReportService(db)
	ctx := context.Background()

	for _, due := range []time.Time{
		day(2024, time.February, 1),
		day(2024, time.May, 1),
	} {
		if _, err := txSvc.Create(ctx, "u1", CreateTransactionInput{
			Kind:        domain.KindExpense,
			Description: "entry",
			Amount:      decimal.RequireFromString("40.00"),
			DueDate:     due,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// Only the lower bound set: everything from March onwards.
	sum, err := rptSvc.Summary(ctx, "u1", day(2024, time.March, 1), time.Time{})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Count != 1 {
		t.Fatalf("count = %d; want only the May transaction", sum.Count)
	}
}

func TestReportSummary_EmptyWindow(t *testing.T) {
	db := newTestDB(t)
	rptSvc := NewReportService(db)

	sum, err := rptSvc.Summary(context.Background(), "u1", day(2024, time.March, 1), day(2024, time.March, 31))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Count != 0 || !sum.Balance.IsZero() {
		t.Fatalf("empty window must be all zeros: %+v", sum)
	}
}
