package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataTypeSQLRoundTrip(t *testing.T) {
	types := []DataType{TypeText, TypeInteger, TypeBigInteger, TypeFloat, TypeRaw}

	for _, dataType := range types {
		parsed, err := ParseDataType(dataType.ToSQL())
		require.NoError(t, err)
		assert.Equal(t, dataType, parsed)
	}
}

func TestParseDataTypeUnknown(t *testing.T) {
	_, err := ParseDataType("NOT_A_TYPE")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptMetadata)
}

func TestParseValue(t *testing.T) {
	t.Run("text passes through", func(t *testing.T) {
		v, err := TypeText.ParseValue("anything at all")
		require.NoError(t, err)
		assert.Equal(t, "anything at all", v)
	})

	t.Run("integer", func(t *testing.T) {
		v, err := TypeInteger.ParseValue("42")
		require.NoError(t, err)
		assert.Equal(t, int32(42), v)

		_, err = TypeInteger.ParseValue("not a number")
		assert.ErrorIs(t, err, ErrTypeMismatch)

		// Out of int32 range
		_, err = TypeInteger.ParseValue("3000000000")
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("big integer", func(t *testing.T) {
		v, err := TypeBigInteger.ParseValue("3000000000")
		require.NoError(t, err)
		assert.Equal(t, int64(3000000000), v)

		_, err = TypeBigInteger.ParseValue("21.5")
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("float", func(t *testing.T) {
		v, err := TypeFloat.ParseValue("21.5")
		require.NoError(t, err)
		assert.Equal(t, 21.5, v)

		_, err = TypeFloat.ParseValue("warm")
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("raw accepts anything as bytes", func(t *testing.T) {
		v, err := TypeRaw.ParseValue("\x00\x01binary")
		require.NoError(t, err)
		assert.Equal(t, []byte("\x00\x01binary"), v)
	})
}

func TestRawColumnDecode(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		raw := RawColumn{
			ProjectID:   1,
			Name:        "temp reading",
			EncodedName: "tempreading",
			ColumnType:  "DOUBLE PRECISION",
			CreatedAt:   1700000000,
		}

		column, err := raw.Decode()
		require.NoError(t, err)
		assert.Equal(t, TypeFloat, column.Type)
		assert.Equal(t, "temp reading", column.Name)
		assert.Equal(t, int64(1700000000), column.CreatedAt.Unix())
	})

	t.Run("unknown type token", func(t *testing.T) {
		raw := RawColumn{Name: "bad", ColumnType: "MYSTERY"}

		_, err := raw.Decode()
		assert.ErrorIs(t, err, ErrCorruptMetadata)
	})
}
