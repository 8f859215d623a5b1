// Package services defines the business logic for transactions, recurrence
// processing, and reporting. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

var (
	// ErrTransactionNotFound indicates that the requested transaction does
	// not exist or is not accessible to the current user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidKind is returned when a transaction kind is outside the
	// allowed set (income, expense).
	ErrInvalidKind = errors.New("kind must be income or expense")

	// ErrInvalidAmount is returned when a transaction amount is zero or
	// negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrFrequencyRequired is returned when a transaction is flagged
	// recurring without a recurrence frequency. The engine never guesses a
	// frequency, so creation fails fast instead.
	ErrFrequencyRequired = errors.New("recurrence frequency is required for recurring transactions")

	// ErrInvalidFrequency is returned when a recurrence frequency is not one
	// of monthly, bimonthly, quarterly, semiannual, annual.
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")

	// ErrInvalidRecurrenceCount is returned when a repetition count is zero
	// or negative.
	ErrInvalidRecurrenceCount = errors.New("recurrence count must be positive")

	// ErrAlreadyPaid is returned when marking paid a transaction that is
	// already paid.
	ErrAlreadyPaid = errors.New("transaction already paid")

	// ErrStoreUnavailable wraps a store failure that prevents a batch from
	// starting at all (fatal, as opposed to per-record failures).
	ErrStoreUnavailable = errors.New("store unavailable")
)
