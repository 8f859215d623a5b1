// Package services – ReportService
//
// This file implements period summary reporting over transactions. All money
// arithmetic uses shopspring/decimal so totals are exact; sums are computed
// in Go rather than in SQL to avoid the float round-trip SQLite aggregate
// functions would introduce.
package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/advokatia/go-finance-backend/internal/domain"
	"github.com/advokatia/go-finance-backend/internal/repo"
)

// Summary aggregates a user's transactions over a due-date window.
type Summary struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	Balance        decimal.Decimal `json:"balance"`
	PendingIncome  decimal.Decimal `json:"pending_income"`
	PendingExpense decimal.Decimal `json:"pending_expense"`
	Count          int             `json:"count"`
}

// ReportService computes summary reports.
type ReportService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewReportService constructs a ReportService.
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// Summary totals the user's income and expense over [from, to] by due date;
// a zero from or to leaves that side of the window open, so two zero bounds
// total everything. Balance is income minus expense over all statuses; the
// pending fields break out what has not been settled yet.
func (s *ReportService) Summary(ctx context.Context, userID string, from, to time.Time) (Summary, error) {
	out := Summary{
		From:           from,
		To:             to,
		Income:         decimal.Zero,
		Expense:        decimal.Zero,
		Balance:        decimal.Zero,
		PendingIncome:  decimal.Zero,
		PendingExpense: decimal.Zero,
	}

	// A zero bound means the window is open on that side.
	var f repo.TransactionFilter
	if !from.IsZero() {
		f.From = &from
	}
	if !to.IsZero() {
		f.To = &to
	}

	rows, err := repo.ListTransactionsPage(ctx, s.DB, userID, f, 0, 0)
	if err != nil {
		return out, err
	}

	for _, tx := range rows {
		out.Count++
		switch tx.Kind {
		case domain.KindIncome:
			out.Income = out.Income.Add(tx.Amount)
			if tx.Status == domain.StatusPending {
				out.PendingIncome = out.PendingIncome.Add(tx.Amount)
			}
		case domain.KindExpense:
			out.Expense = out.Expense.Add(tx.Amount)
			if tx.Status == domain.StatusPending {
				out.PendingExpense = out.PendingExpense.Add(tx.Amount)
			}
		}
	}
	out.Balance = out.Income.Sub(out.Expense)
	return out, nil
}
