// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the store contract the recurrence driver
// runs against: candidate selection, occurrence insertion with duplicate
// detection, and the cursor update that commits an advancement.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/advokatia/go-finance-backend/internal/domain"
)

// ListDueRecurring returns all active generator rows whose due date has
// arrived or passed as of the given date, skipping series whose end date is
// already behind. One pass per driver invocation; ordering is deterministic
// so batch reports are stable.
//
// Both comparisons are date-granular: stored dates are midnight values, so a
// wall-clock asOf (a 09:00 scheduler tick) is truncated to its calendar date
// first. Otherwise a series ending exactly on the run day would never match
// `recurrence_end_date >= asOf` and its final occurrence would be lost.
func ListDueRecurring(ctx context.Context, db *gorm.DB, asOf time.Time) ([]domain.Transaction, error) {
	y, m, d := asOf.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, asOf.Location())

	var out []domain.Transaction
	err := db.WithContext(ctx).
		Where("is_recurring = ? AND due_date <= ?", true, day).
		Where("recurrence_end_date IS NULL OR recurrence_end_date >= ?", day).
		Order("due_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

// InsertOccurrence inserts a generated occurrence row. A UNIQUE violation on
// (recurrence_original_id, due_date) is reported as ErrDuplicate: the period
// was already materialized by an earlier (possibly crashed) run and the
// caller should treat the record as processed.
func InsertOccurrence(ctx context.Context, db *gorm.DB, occ *domain.Transaction) error {
	if err := db.WithContext(ctx).Create(occ).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// AdvanceCursor applies the post-generation update to the original row: due
// date moved to the next period, remaining count decremented, or the
// generator deactivated on termination. This write is the commit point of an
// advancement; ErrNotFound means the original vanished between read and
// update and the record should be skipped.
func AdvanceCursor(ctx context.Context, db *gorm.DB, id string, patch map[string]any) error {
	res := db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ?", id).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
