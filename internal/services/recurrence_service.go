// Package services – RecurrenceService
//
// This file implements the driver loop around the pure recurrence engine. It
// selects all generator rows whose due date has arrived, advances each one,
// and persists the outcome — the occurrence insert and the cursor update —
// inside one database transaction per record, so a crash can never leave a
// generated occurrence without its moved cursor.
//
// Records are processed independently: one record's failure is accumulated
// into the batch report and never aborts the rest. Only a failure to list the
// candidates at all is fatal.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/advokatia/go-finance-backend/internal/domain"
	"github.com/advokatia/go-finance-backend/internal/recurrence"
	"github.com/advokatia/go-finance-backend/internal/repo"
)

// RecordFailure describes one record the driver could not advance.
type RecordFailure struct {
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
}

// Report summarizes one driver run.
//
//   - Processed: candidates examined
//   - Generated: new occurrences materialized
//   - Terminated: series deactivated (end date or count exhausted)
//   - Skipped: benign no-ops (period already materialized by an earlier run,
//     or the original vanished mid-flight)
//   - Failures: records that errored and stay eligible for the next run
type Report struct {
	Processed  int             `json:"processed"`
	Generated  int             `json:"generated"`
	Terminated int             `json:"terminated"`
	Skipped    int             `json:"skipped"`
	Failures   []RecordFailure `json:"failures,omitempty"`
}

// RecurrenceService drives recurring-transaction advancement. It is invoked
// by the daily scheduler and by the on-demand HTTP endpoint with the same
// contract.
type RecurrenceService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewRecurrenceService constructs a RecurrenceService.
func NewRecurrenceService(db *gorm.DB) *RecurrenceService {
	return &RecurrenceService{DB: db}
}

// Run processes every eligible generator once as of the given date and
// returns the batch report.
//
// Idempotence: a successful advancement moves the original's due date past
// asOf, so a second run for the same date selects no candidates. If a crash
// left an occurrence inserted but the cursor not yet moved, the retry hits
// the (recurrence_original_id, due_date) unique index, treats the insert as
// already done, and completes the cursor update — converging instead of
// duplicating.
//
// The returned error is non-nil only for fatal conditions (candidate listing
// failed); per-record errors are reported in Report.Failures.
func (s *RecurrenceService) Run(ctx context.Context, asOf time.Time) (Report, error) {
	var rep Report

	candidates, err := repo.ListDueRecurring(ctx, s.DB, asOf)
	if err != nil {
		return rep, errors.Join(ErrStoreUnavailable, err)
	}

	for _, rec := range candidates {
		if err := ctx.Err(); err != nil {
			// Cancellation between records is safe: every advanced record is
			// already committed, the rest stay eligible for the next run.
			return rep, nil
		}
		rep.Processed++

		res, err := recurrence.Advance(rec, asOf)
		if err != nil {
			// Pure-computation errors (bad frequency, contract violation).
			// The record stays as it was and will be reported again until
			// someone fixes it.
			rep.Failures = append(rep.Failures, RecordFailure{TransactionID: rec.ID, Reason: err.Error()})
			log.Warn().Str("transaction_id", rec.ID).Err(err).Msg("recurrence advance rejected")
			continue
		}

		duplicate, err := s.persist(ctx, rec, res)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			// Original vanished between read and update.
			rep.Skipped++
			log.Warn().Str("transaction_id", rec.ID).Msg("original vanished before cursor update, skipping")
		case err != nil:
			rep.Failures = append(rep.Failures, RecordFailure{TransactionID: rec.ID, Reason: err.Error()})
			log.Error().Str("transaction_id", rec.ID).Err(err).Msg("recurrence persist failed")
		case duplicate:
			// Period already materialized by an earlier run; the cursor
			// update still went through, so the series is converged now.
			rep.Skipped++
			log.Debug().Str("transaction_id", rec.ID).Msg("occurrence already materialized, skipping")
		case res.Terminated:
			rep.Terminated++
		default:
			rep.Generated++
		}
	}

	return rep, nil
}

// persist writes one advancement atomically: occurrence insert first, cursor
// update as the commit point. Update-before-insert would make a crash unsafe
// to retry, so the order is fixed. A duplicate insert is not an error here —
// it means an earlier run crashed after the insert, and committing the cursor
// update now finishes that interrupted advancement.
func (s *RecurrenceService) persist(ctx context.Context, rec domain.Transaction, res recurrence.Result) (duplicate bool, err error) {
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res.Next != nil {
			ierr := repo.InsertOccurrence(ctx, tx, res.Next)
			if errors.Is(ierr, repo.ErrDuplicate) {
				duplicate = true
			} else if ierr != nil {
				return ierr
			}
		}
		return repo.AdvanceCursor(ctx, tx, rec.ID, cursorPatch(res))
	})
	return duplicate, err
}

// cursorPatch converts an advancement result into the column patch applied to
// the original row.
func cursorPatch(res recurrence.Result) map[string]any {
	if res.Terminated {
		return map[string]any{"is_recurring": false}
	}
	patch := map[string]any{"due_date": res.Updated.DueDate}
	if res.Updated.RecurrenceCount != nil {
		patch["recurrence_count"] = *res.Updated.RecurrenceCount
	}
	return patch
}

// Describe renders a one-line human summary of a report, used in logs.
func (r Report) Describe() string {
	return fmt.Sprintf("processed=%d generated=%d terminated=%d skipped=%d failed=%d",
		r.Processed, r.Generated, r.Terminated, r.Skipped, len(r.Failures))
}
