// Package repository persists recipes, their sub-resources, reviews and users with gorm
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps driver and gorm errors onto the package sentinels
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// isUniqueViolation recognises a unique index violation from any supported driver:
// gorm's translated error, lib/pq's SQLSTATE 23505, or sqlite's message
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
