package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Database errors independent of the driver.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key violation")
	ErrForeignKey     = errors.New("foreign key violation")
	ErrInvalidData    = errors.New("invalid data")
	ErrUndefinedTable = errors.New("undefined table")
	ErrConnection     = errors.New("database connection error")
)

// PostgreSQL SQLSTATE codes translated by TranslateError.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeUndefinedTable      = "42P01"
	codeUndefinedColumn     = "42703"
	classConnection         = "08"
	codeAdminShutdown       = "57P01"
	codeCannotConnectNow    = "57P03"
	codeSerialization       = "40001"
	codeDeadlock            = "40P01"
)

// TranslateError maps GORM and driver errors onto the sentinels above.
// Unknown errors are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return ErrDuplicateKey
		case pgErr.Code == codeForeignKeyViolation:
			return ErrForeignKey
		case pgErr.Code == codeCheckViolation, pgErr.Code == codeNotNullViolation:
			return ErrInvalidData
		case pgErr.Code == codeUndefinedTable, pgErr.Code == codeUndefinedColumn:
			return ErrUndefinedTable
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == classConnection,
			pgErr.Code == codeAdminShutdown, pgErr.Code == codeCannotConnectNow:
			return ErrConnection
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return ErrConnection
	}

	return err
}

// IsRetryable reports whether retrying the operation may succeed.
func IsRetryable(err error) bool {
	if errors.Is(TranslateError(err), ErrConnection) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeSerialization || pgErr.Code == codeDeadlock
	}
	return false
}
