// Package services – TransactionService
//
// This file implements the TransactionService, which manages the lifecycle of
// receivables and payables. It validates kinds, amounts, and recurrence
// definitions, enforces ownership scoping, and coordinates repository
// operations for creating, listing (with pagination), updating, paying, and
// deleting transactions.
//
// Service-level errors (e.g. ErrTransactionNotFound, ErrFrequencyRequired)
// are returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/advokatia/go-finance-backend/internal/domain"
	"github.com/advokatia/go-finance-backend/internal/recurrence"
	"github.com/advokatia/go-finance-backend/internal/repo"
)

// CreateTransactionInput carries the validated fields for a new transaction.
type CreateTransactionInput struct {
	Kind                string
	Description         string
	Amount              decimal.Decimal
	DueDate             time.Time
	IsRecurring         bool
	RecurrenceFrequency *string
	RecurrenceEndDate   *time.Time
	RecurrenceCount     *int
	AccountID           *string
	CaseID              *string
	CategoryID          *string
	Observations        *string
}

// UpdateTransactionInput carries the editable fields of an existing
// transaction. Nil fields are left untouched.
type UpdateTransactionInput struct {
	Description  *string
	Amount       *decimal.Decimal
	DueDate      *time.Time
	CategoryID   *string
	Observations *string
	// StopRecurring deactivates the generator without deleting the row.
	StopRecurring bool
}

// TransactionService provides CRUD operations over transactions, including
// the validation of recurrence definitions at creation time.
type TransactionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewTransactionService constructs a TransactionService.
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

// Create validates and inserts a new transaction owned by userID.
//
// Validation:
//   - kind must be income or expense
//   - amount must be strictly positive
//   - a recurring transaction must carry a valid frequency; a repetition
//     count, when present, must be positive
func (s *TransactionService) Create(ctx context.Context, userID string, in CreateTransactionInput) (*domain.Transaction, error) {
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	if kind != domain.KindIncome && kind != domain.KindExpense {
		return nil, ErrInvalidKind
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.IsRecurring {
		if in.RecurrenceFrequency == nil || strings.TrimSpace(*in.RecurrenceFrequency) == "" {
			return nil, ErrFrequencyRequired
		}
		if !recurrence.Frequency(*in.RecurrenceFrequency).IsValid() {
			return nil, ErrInvalidFrequency
		}
		if in.RecurrenceCount != nil && *in.RecurrenceCount <= 0 {
			return nil, ErrInvalidRecurrenceCount
		}
	}

	tx := &domain.Transaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		Kind:         kind,
		Description:  strings.TrimSpace(in.Description),
		Amount:       in.Amount,
		DueDate:      in.DueDate,
		Status:       domain.StatusPending,
		IsRecurring:  in.IsRecurring,
		AccountID:    in.AccountID,
		CaseID:       in.CaseID,
		CategoryID:   in.CategoryID,
		Observations: in.Observations,
	}
	if in.IsRecurring {
		tx.RecurrenceFrequency = in.RecurrenceFrequency
		tx.RecurrenceEndDate = in.RecurrenceEndDate
		tx.RecurrenceCount = in.RecurrenceCount
	}

	if err := repo.CreateTransaction(ctx, s.DB, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Get returns a single transaction owned by userID.
func (s *TransactionService) Get(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	tx, err := repo.GetTransaction(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTransactionNotFound
	}
	return tx, err
}

// ListPage returns a page of the user's transactions plus the total count.
// It applies defaults for invalid page/pageSize.
func (s *TransactionService) ListPage(ctx context.Context, userID string, f repo.TransactionFilter, page, pageSize int) ([]domain.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountTransactions(ctx, s.DB, userID, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Transaction{}, 0, nil
	}

	items, err := repo.ListTransactionsPage(ctx, s.DB, userID, f, offset, pageSize)
	return items, total, err
}

// Update applies the editable fields of in to a transaction owned by userID.
func (s *TransactionService) Update(ctx context.Context, userID, id string, in UpdateTransactionInput) error {
	patch := map[string]any{}
	if in.Description != nil {
		patch["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return ErrInvalidAmount
		}
		patch["amount"] = *in.Amount
	}
	if in.DueDate != nil {
		patch["due_date"] = *in.DueDate
	}
	if in.CategoryID != nil {
		patch["category_id"] = *in.CategoryID
	}
	if in.Observations != nil {
		patch["observations"] = *in.Observations
	}
	if in.StopRecurring {
		patch["is_recurring"] = false
	}
	if len(patch) == 0 {
		return nil
	}

	err := repo.UpdateTransaction(ctx, s.DB, id, userID, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTransactionNotFound
	}
	return err
}

// MarkPaid transitions a pending transaction to paid with the given payment
// date (today when zero).
func (s *TransactionService) MarkPaid(ctx context.Context, userID, id string, paymentDate time.Time) error {
	tx, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if tx.Status == domain.StatusPaid {
		return ErrAlreadyPaid
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	err = repo.UpdateTransaction(ctx, s.DB, id, userID, map[string]any{
		"status":       domain.StatusPaid,
		"payment_date": paymentDate,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTransactionNotFound
	}
	return err
}

// Delete removes a transaction owned by userID.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	err := repo.DeleteTransaction(ctx, s.DB, id, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTransactionNotFound
	}
	return err
}
