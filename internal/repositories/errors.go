package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes raised when two writers race on the same schema
// object or registry row.
const (
	codeUniqueViolation = "23505"
	codeDuplicateTable  = "42P07"
	codeDuplicateColumn = "42701"
)

// IsSchemaConflict reports whether err is a duplicate table/column/row error
// from the backend. Services use it to tell a benign concurrent-creation
// race apart from a hard failure.
func IsSchemaConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case codeUniqueViolation, codeDuplicateTable, codeDuplicateColumn:
		return true
	}
	return false
}
