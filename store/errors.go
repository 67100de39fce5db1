package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a required single record doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert hits a unique constraint
	ErrDuplicate = errors.New("already exists")
	// ErrReference is returned when a write points at a missing row or a delete
	// removes a row still referenced elsewhere
	ErrReference = errors.New("referenced entity is missing or still in use")
	// ErrConsistency matches every *ConsistencyError
	ErrConsistency = errors.New("database was changed during data merging")
)

// ConsistencyError reports a reference that one query returned and a later,
// independent query could not resolve.
type ConsistencyError struct {
	Entity   string
	ID       uint
	Referrer string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%v: %s %d referenced by %s is missing", ErrConsistency, e.Entity, e.ID, e.Referrer)
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// translate maps driver errors onto the package sentinels, keeping the cause.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", ErrReference, err)
	}
	return err
}
