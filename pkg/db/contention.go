package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that indicate the transaction lost a race rather than
// hit a real fault: serialization_failure, deadlock_detected,
// lock_not_available.
var contentionCodes = map[string]struct{}{
	"40001": {},
	"40P01": {},
	"55P03": {},
}

// IsContention reports whether err is a transient transaction conflict the
// caller may retry.
func IsContention(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		_, ok := contentionCodes[pgErr.Code]
		return ok
	}
	return false
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
