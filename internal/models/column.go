package models

import (
	"fmt"
	"time"
)

// Column is a registered field of a project: one physical table column plus
// one registry metadata row.
type Column struct {
	ProjectID   int64     `json:"project_id"`
	Name        string    `json:"name"`
	EncodedName string    `json:"encoded_name"`
	Type        DataType  `json:"-"`
	TypeName    string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// RawColumn mirrors a row of the columns registry table before decoding.
type RawColumn struct {
	ProjectID   int64
	Name        string
	EncodedName string
	ColumnType  string
	CreatedAt   int64
}

// Decode converts a registry row into a Column. An unknown type token fails
// with ErrCorruptMetadata.
func (r RawColumn) Decode() (Column, error) {
	dataType, err := ParseDataType(r.ColumnType)
	if err != nil {
		return Column{}, fmt.Errorf("decoding column %q: %w", r.Name, err)
	}

	return Column{
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		EncodedName: r.EncodedName,
		Type:        dataType,
		TypeName:    dataType.ToSQL(),
		CreatedAt:   time.Unix(r.CreatedAt, 0).UTC(),
	}, nil
}
