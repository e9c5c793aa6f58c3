package models

import "errors"

// Sentinel errors for the schema engine. Callers check these with errors.Is;
// repositories and services wrap them with operation and identifier context.
var (
	// ErrSchemaConflict is returned when a project, table or column already
	// exists under the requested name, including the case where two different
	// logical names encode to the same physical identifier.
	ErrSchemaConflict = errors.New("schema conflict")

	// ErrEmptyIdentifier is returned when a logical name sanitizes to the
	// empty string and therefore cannot back a physical identifier.
	ErrEmptyIdentifier = errors.New("identifier is empty after encoding")

	// ErrReservedName is returned when a field name collides with the
	// reserved timestamp column.
	ErrReservedName = errors.New("name is reserved")

	// ErrCorruptMetadata is returned when a registry row cannot be decoded,
	// e.g. its column_type token is not a known data type.
	ErrCorruptMetadata = errors.New("corrupt registry metadata")

	// ErrTypeMismatch is returned when a field value cannot be stored as the
	// column's declared data type.
	ErrTypeMismatch = errors.New("value does not match column type")
)
