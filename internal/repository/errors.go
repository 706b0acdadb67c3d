package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by lookups whose callers must distinguish absence
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry is returned when an insert violates a unique constraint
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// unique_violation
const pqUniqueViolation = "23505"

func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "Duplicate entry")
}
