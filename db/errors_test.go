package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	type missing struct {
		Name *string `validate:"required"`
	}
	verr := validator.New().Struct(missing{})

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"no rows", sql.ErrNoRows, NotFound},
		{"wrapped no rows", fmt.Errorf("select: %w", sql.ErrNoRows), NotFound},
		{"validator", verr, ValidationFailed},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, UniqueViolation},
		{"mysql parent row", &mysql.MySQLError{Number: 1451}, ForeignKeyViolation},
		{"mysql child row", &mysql.MySQLError{Number: 1452}, ForeignKeyViolation},
		{"mysql null column", &mysql.MySQLError{Number: 1048}, ValidationFailed},
		{"mysql no default", &mysql.MySQLError{Number: 1364}, ValidationFailed},
		{"mysql other", &mysql.MySQLError{Number: 1213}, Unknown},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, UniqueViolation},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, ForeignKeyViolation},
		{"sqlite not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, ValidationFailed},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, Unknown},
		{"plain", errors.New("boom"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate(Notes, tt.err)
			assert.Equal(t, tt.want, KindOf(err))

			var storeErr *Error
			if assert.ErrorAs(t, err, &storeErr) {
				assert.Equal(t, Notes, storeErr.Resource)
			}
			assert.Equal(t, tt.err, errors.Unwrap(err))
		})
	}
}

func TestTranslateKeepsStoreErrors(t *testing.T) {
	orig := &Error{Kind: NotFound, Resource: Users}
	assert.Same(t, orig, translate(Notes, orig))
	assert.Nil(t, translate(Notes, nil))
	assert.Equal(t, Unknown, KindOf(errors.New("not a store error")))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "notes.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", sqliteDSN("notes.db"))
	assert.Equal(t, "file:x.db?mode=rwc&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", sqliteDSN("file:x.db?mode=rwc"))
	assert.Equal(t, "x.db?_foreign_keys=off&_busy_timeout=5000&_txlock=immediate", sqliteDSN("x.db?_foreign_keys=off"))
}
