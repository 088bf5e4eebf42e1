package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrSlotUnavailable = errors.New("slot is not open")
)

// IsUniqueViolation reports whether err is a unique-constraint failure. When
// constraint is non-empty only that index matches on postgres.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	// sqlite reports the violated columns, not the index name
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
