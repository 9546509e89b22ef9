package postgres

import (
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// uniqueViolationTarget inspects a write error and reports which unique index
// was violated. It needs the raw *pgconn.PgError from the driver: the
// constraint name is the signal, and gorm's TranslateError option (kept off in
// New) would replace the error with a bare sentinel that names no constraint.
func uniqueViolationTarget(err error) (column string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	target := pgErr.ConstraintName
	if target == "" {
		// Older server versions may omit the constraint field; the message
		// still quotes the index name.
		target = strings.ToLower(pgErr.Message)
	}

	switch {
	case strings.Contains(target, "email"):
		return "email", true
	case strings.Contains(target, "username"):
		return "username", true
	default:
		return "", true
	}
}

func isNotNullConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.NotNullViolation
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null")
}
