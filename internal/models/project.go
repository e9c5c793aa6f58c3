package models

import (
	"time"
)

// Project is a named dataset backed by one dynamic wide table. The encoded
// name is the sanitized physical table identifier derived from Name.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	EncodedName string    `json:"encoded_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// RawProject mirrors a row of the projects registry table before decoding.
type RawProject struct {
	ID          int64
	Name        string
	EncodedName string
	CreatedAt   int64
}

// Decode converts a registry row into a Project.
func (r RawProject) Decode() Project {
	return Project{
		ID:          r.ID,
		Name:        r.Name,
		EncodedName: r.EncodedName,
		CreatedAt:   time.Unix(r.CreatedAt, 0).UTC(),
	}
}
