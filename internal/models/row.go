package models

import "time"

// Row is one datapoint read back from a project table. Fields holds the
// user columns by logical name; the reserved ingestion timestamp is kept
// separate and never appears in Fields.
type Row struct {
	Timestamp time.Time      `json:"timestamp"`
	Fields    map[string]any `json:"fields"`
}
