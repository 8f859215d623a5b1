package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/advokatia/go-finance-backend/internal/domain"
)

// Sentinel errors returned by Advance. Handlers and the driver map these to
// stable results; none of them should abort a batch.
var (
	// ErrNotRecurring is returned when Advance is called on a row whose
	// IsRecurring flag is false. Such rows are never advanced.
	ErrNotRecurring = errors.New("transaction is not recurring")

	// ErrDueInFuture is returned when the record's due date has not arrived
	// yet as of the reference date. Candidate selection is the driver's job,
	// but Advance re-validates and fails closed.
	ErrDueInFuture = errors.New("due date is in the future")

	// ErrInvalidFrequency is returned when a recurring row carries no
	// frequency or an unrecognized one. The engine never guesses.
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")
)

// Result is the outcome of advancing one recurring transaction.
//
// Exactly one of two shapes is produced:
//   - Terminated: the series is over. Updated carries the original with
//     IsRecurring set false; Next is nil.
//   - Advanced: Next is the newly materialized occurrence and Updated is the
//     original with its due-date cursor and remaining count moved forward.
//
// Moving the original's due date forward is what makes repeated driver runs
// idempotent: once persisted, the row no longer matches the candidate query
// for the same period.
type Result struct {
	Terminated bool
	Next       *domain.Transaction
	Updated    domain.Transaction
}

// Advance computes the next step of a recurring transaction as of the given
// reference date. It is pure: the caller persists Next (insert) and Updated
// (update), ideally inside one store transaction per record.
func Advance(rec domain.Transaction, asOf time.Time) (Result, error) {
	if !rec.IsRecurring {
		return Result{}, ErrNotRecurring
	}
	if rec.RecurrenceFrequency == nil || *rec.RecurrenceFrequency == "" {
		return Result{}, fmt.Errorf("%w: frequency not set on recurring transaction %s", ErrInvalidFrequency, rec.ID)
	}
	freq := Frequency(*rec.RecurrenceFrequency)
	if !freq.IsValid() {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, freq)
	}
	if dateOf(rec.DueDate).After(dateOf(asOf)) {
		return Result{}, ErrDueInFuture
	}

	nextDue := StepForward(rec.DueDate, freq)

	// Termination: the end date would be overshot, or the remaining count is
	// exhausted. The original stops generating; no occurrence is produced.
	if rec.RecurrenceEndDate != nil && nextDue.After(dateOf(*rec.RecurrenceEndDate)) {
		return terminate(rec), nil
	}
	if rec.RecurrenceCount != nil && *rec.RecurrenceCount <= 1 {
		return terminate(rec), nil
	}

	var remaining *int
	if rec.RecurrenceCount != nil {
		n := *rec.RecurrenceCount - 1
		remaining = &n
	}

	// The occurrence is a one-shot instance: it keeps the descriptive and
	// reference fields, resets payment state, points back at the series
	// root, and is not itself a generator. The original row stays the only
	// cursor of the series.
	rootID := rec.SeriesRootID()
	next := rec
	next.ID = uuid.NewString()
	next.DueDate = nextDue
	next.Status = domain.StatusPending
	next.PaymentDate = nil
	next.IsRecurring = false
	next.RecurrenceFrequency = nil
	next.RecurrenceEndDate = nil
	next.RecurrenceCount = cloneIntPtr(remaining)
	next.RecurrenceOriginalID = &rootID
	next.CreatedAt = time.Time{}
	next.UpdatedAt = time.Time{}

	updated := rec
	updated.DueDate = nextDue
	updated.RecurrenceCount = cloneIntPtr(remaining)

	return Result{Next: &next, Updated: updated}, nil
}

// terminate returns the result that deactivates the generator row.
func terminate(rec domain.Transaction) Result {
	rec.IsRecurring = false
	return Result{Terminated: true, Updated: rec}
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	n := *p
	return &n
}
