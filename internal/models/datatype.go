package models

import (
	"fmt"
	"strconv"
)

// DataType is the closed set of column types a project column can declare.
type DataType int

const (
	TypeText DataType = iota
	TypeInteger
	TypeBigInteger
	TypeFloat
	TypeRaw
)

// ToSQL returns the PostgreSQL storage type for the data type.
func (t DataType) ToSQL() string {
	switch t {
	case TypeText:
		return "TEXT"
	case TypeInteger:
		return "INTEGER"
	case TypeBigInteger:
		return "BIGINT"
	case TypeFloat:
		return "DOUBLE PRECISION"
	case TypeRaw:
		return "BYTEA"
	default:
		return "TEXT"
	}
}

func (t DataType) String() string {
	return t.ToSQL()
}

// ParseDataType maps a stored type token back to a DataType. Unknown tokens
// are a decoding error, never a silent default.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "TEXT":
		return TypeText, nil
	case "INTEGER":
		return TypeInteger, nil
	case "BIGINT":
		return TypeBigInteger, nil
	case "DOUBLE PRECISION":
		return TypeFloat, nil
	case "BYTEA":
		return TypeRaw, nil
	default:
		return 0, fmt.Errorf("%w: unknown column type %q", ErrCorruptMetadata, s)
	}
}

// ParseValue converts an incoming string value into a bindable value of the
// declared type. Unparsable values fail with ErrTypeMismatch instead of being
// coerced or truncated.
func (t DataType) ParseValue(s string) (any, error) {
	switch t {
	case TypeText:
		return s, nil
	case TypeInteger:
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid INTEGER", ErrTypeMismatch, s)
		}
		return int32(v), nil
	case TypeBigInteger:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid BIGINT", ErrTypeMismatch, s)
		}
		return v, nil
	case TypeFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid DOUBLE PRECISION", ErrTypeMismatch, s)
		}
		return v, nil
	case TypeRaw:
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("%w: unhandled data type %d", ErrTypeMismatch, t)
	}
}
