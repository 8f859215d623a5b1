// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file centralizes the repository-level sentinel errors
// shared by all repo functions.
package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound indicates that the requested row does not exist (or vanished
// between a read and a write).
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a unique-constraint violation, e.g. inserting a
// second occurrence for the same (recurrence_original_id, due_date).
var ErrDuplicate = errors.New("duplicate")

// isDuplicate reports whether err is a unique-constraint violation.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations, so
// gorm.ErrDuplicatedKey alone is not enough.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
