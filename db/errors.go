package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// Kind is the closed set of failures the store reports to its callers.
type Kind int

const (
	Unknown Kind = iota
	NotFound
	UniqueViolation
	ForeignKeyViolation
	ValidationFailed
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case UniqueViolation:
		return "unique_violation"
	case ForeignKeyViolation:
		return "foreign_key_violation"
	case ValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// Resource names the table an error originated from.
type Resource string

const (
	Users Resource = "users"
	Notes Resource = "notes"
)

// Error is the only error type returned by Store methods.
type Error struct {
	Kind     Kind
	Resource Resource
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Resource, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Resource, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or Unknown when err is not a store error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// MySQL server error numbers.
const (
	mysqlDupEntry          = 1062
	mysqlRowIsReferenced   = 1451
	mysqlNoReferencedRow   = 1452
	mysqlBadNull           = 1048
	mysqlNoDefault         = 1364
	mysqlTruncatedWrongVal = 1366
)

// translate turns a driver or validation error into a *Error. It is
// idempotent: errors that are already store errors pass through.
func translate(res Resource, err error) error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		return err
	}

	return &Error{Kind: classify(err), Resource: res, Err: err}
}

func classify(err error) Kind {
	if errors.Is(err, sql.ErrNoRows) {
		return NotFound
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationFailed
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupEntry:
			return UniqueViolation
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return ForeignKeyViolation
		case mysqlBadNull, mysqlNoDefault, mysqlTruncatedWrongVal:
			return ValidationFailed
		}
		return Unknown
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return UniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			return ForeignKeyViolation
		case sqlite3.ErrConstraintNotNull, sqlite3.ErrConstraintCheck:
			return ValidationFailed
		}
	}

	return Unknown
}
