package postgres

import (
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUniqueViolationTarget_PgError(t *testing.T) {
	emailErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uni_users_email"}
	column, ok := uniqueViolationTarget(emailErr)
	assert.True(t, ok)
	assert.Equal(t, "email", column)

	usernameErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uni_users_username"}
	column, ok = uniqueViolationTarget(usernameErr)
	assert.True(t, ok)
	assert.Equal(t, "username", column)

	// Wrapped errors still classify.
	column, ok = uniqueViolationTarget(errors.Wrap(emailErr, "create user"))
	assert.True(t, ok)
	assert.Equal(t, "email", column)
}

func TestUniqueViolationTarget_MessageFallback(t *testing.T) {
	// No constraint field; the server message still quotes the index.
	err := &pgconn.PgError{
		Code:    pgerrcode.UniqueViolation,
		Message: `duplicate key value violates unique constraint "uni_users_username"`,
	}
	column, ok := uniqueViolationTarget(err)
	assert.True(t, ok)
	assert.Equal(t, "username", column)
}

func TestUniqueViolationTarget_TranslatedSentinelDoesNotClassify(t *testing.T) {
	// gorm's TranslateError option replaces the driver error with this
	// sentinel, whose message names no column. It must not be treated as a
	// classified conflict, which is why New opens the DB without translation.
	_, ok := uniqueViolationTarget(gorm.ErrDuplicatedKey)
	assert.False(t, ok)

	_, ok = uniqueViolationTarget(errors.Wrap(gorm.ErrDuplicatedKey, "create user"))
	assert.False(t, ok)
}

func TestUniqueViolationTarget_UnknownConstraintStillConflict(t *testing.T) {
	err := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_pkey"}
	column, ok := uniqueViolationTarget(err)
	assert.True(t, ok)
	assert.Empty(t, column)
}

func TestUniqueViolationTarget_OtherErrors(t *testing.T) {
	_, ok := uniqueViolationTarget(errors.New("connection refused"))
	assert.False(t, ok)

	otherPg := &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "email"}
	_, ok = uniqueViolationTarget(otherPg)
	assert.False(t, ok)
	assert.True(t, isNotNullConstraintViolation(otherPg))
}
