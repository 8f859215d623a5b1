// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Transaction
// model: CRUD scoped by owner, plus pagination.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/advokatia/go-finance-backend/internal/domain"
)

// TransactionFilter narrows transaction listings. Zero values mean "no
// filter" for that field.
type TransactionFilter struct {
	Kind   string // income|expense
	Status string // pending|paid
	CaseID string
	From   *time.Time // due_date >= From
	To     *time.Time // due_date <= To
}

func (f TransactionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CaseID != "" {
		q = q.Where("case_id = ?", f.CaseID)
	}
	if f.From != nil {
		q = q.Where("due_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("due_date <= ?", *f.To)
	}
	return q
}

// CreateTransaction inserts a new transaction row.
func CreateTransaction(ctx context.Context, db *gorm.DB, tx *domain.Transaction) error {
	if err := db.WithContext(ctx).Create(tx).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetTransaction fetches a transaction by ID ensuring it belongs to the user.
func GetTransaction(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Transaction, error) {
	var out domain.Transaction
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CountTransactions returns the total number of matching rows for pagination.
func CountTransactions(ctx context.Context, db *gorm.DB, userID string, f TransactionFilter) (int64, error) {
	var total int64
	q := f.apply(db.WithContext(ctx).Model(&domain.Transaction{}).Where("user_id = ?", userID))
	err := q.Count(&total).Error
	return total, err
}

// ListTransactionsPage returns a page of the user's transactions ordered
// deterministically (DueDate ASC, ID ASC).
func ListTransactionsPage(ctx context.Context, db *gorm.DB, userID string, f TransactionFilter, offset, limit int) ([]domain.Transaction, error) {
	var out []domain.Transaction
	q := f.apply(db.WithContext(ctx).Where("user_id = ?", userID)).
		Order("due_date ASC, id ASC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// UpdateTransaction applies a column patch to a transaction owned by userID.
// Returns ErrNotFound when no row matched.
func UpdateTransaction(ctx context.Context, db *gorm.DB, id, userID string, patch map[string]any) error {
	res := db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTransaction soft-deletes a transaction owned by userID.
func DeleteTransaction(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
