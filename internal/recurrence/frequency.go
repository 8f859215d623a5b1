// Package recurrence implements the date arithmetic and advancement protocol
// for recurring transactions. Everything in this package is pure computation:
// no clock, no store, no I/O. Callers persist the results.
package recurrence

import "time"

// Frequency is the calendar-unit step of a recurring series. Steps are
// calendar months, not fixed day counts: "monthly" advances by one calendar
// month, preserving the day-of-month with end-of-month clamping.
type Frequency string

const (
	Monthly    Frequency = "monthly"
	Bimonthly  Frequency = "bimonthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
)

// IsValid reports whether f is a recognized frequency.
func (f Frequency) IsValid() bool {
	switch f {
	case Monthly, Bimonthly, Quarterly, Semiannual, Annual:
		return true
	}
	return false
}

// Months returns the number of calendar months one step of f spans.
// It returns 0 for an unrecognized frequency.
func (f Frequency) Months() int {
	switch f {
	case Monthly:
		return 1
	case Bimonthly:
		return 2
	case Quarterly:
		return 3
	case Semiannual:
		return 6
	case Annual:
		return 12
	}
	return 0
}

// StepForward advances d by exactly one step of f using calendar-correct
// month arithmetic. The day-of-month of d is preserved when the target month
// has it, and clamped to the target month's last day otherwise:
//
//	2024-01-31 + monthly → 2024-02-29
//	2023-01-31 + monthly → 2023-02-28
//	2024-11-30 + quarterly → 2025-02-28
//
// Billing due dates are calendar-anchored, so time.Time.AddDate (which rolls
// Jan 31 + 1 month over to Mar 2/3) is deliberately not used here.
func StepForward(d time.Time, f Frequency) time.Time {
	year, month, day := d.Date()

	// First of the target month; time.Date normalizes month overflow.
	first := time.Date(year, month+time.Month(f.Months()), 1, 0, 0, 0, 0, d.Location())
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}

// daysInMonth returns the number of days in the given month. Day 0 of the
// following month normalizes to that month's last day.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOf truncates t to its calendar date, discarding any time-of-day so
// that comparisons are date-granular.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
