package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservedTimestampColumn is the always-present ingestion-time column of
// every project table. User fields must never resolve to it.
const ReservedTimestampColumn = "timestamp"

// TableRepository issues the dynamic DDL/DML against per-project wide
// tables. Identifiers reaching this layer are already sanitized to
// [A-Za-z0-9_] and are additionally quoted via pgx.Identifier; values are
// always bound as parameters, never interpolated.
type TableRepository struct {
	pool *pgxpool.Pool
}

func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{pool: pool}
}

// CreateTable creates the project's wide table containing only the reserved
// timestamp column.
func (r *TableRepository) CreateTable(ctx context.Context, db DB, encodedName string) error {
	query := fmt.Sprintf(
		"CREATE TABLE %s (%s BIGINT NOT NULL)",
		pgx.Identifier{encodedName}.Sanitize(),
		pgx.Identifier{ReservedTimestampColumn}.Sanitize(),
	)

	_, err := db.Exec(ctx, query)
	return err
}

// AddColumn alters the project table to add one nullable column of the
// given storage type.
func (r *TableRepository) AddColumn(ctx context.Context, db DB, tableName, columnName, sqlType string) error {
	query := fmt.Sprintf(
		"ALTER TABLE %s ADD COLUMN %s %s",
		pgx.Identifier{tableName}.Sanitize(),
		pgx.Identifier{columnName}.Sanitize(),
		sqlType,
	)

	_, err := db.Exec(ctx, query)
	return err
}

// InsertRow writes one datapoint. encodedColumns and values must line up
// one-to-one; the first entry is expected to be the reserved timestamp.
func (r *TableRepository) InsertRow(ctx context.Context, tableName string, encodedColumns []string, values []any) error {
	if len(encodedColumns) != len(values) {
		return fmt.Errorf("column/value count mismatch: %d columns, %d values", len(encodedColumns), len(values))
	}

	cols := make([]string, len(encodedColumns))
	placeholders := make([]string, len(encodedColumns))
	for i, c := range encodedColumns {
		cols[i] = pgx.Identifier{c}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{tableName}.Sanitize(),
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	)

	_, err := r.pool.Exec(ctx, query, values...)
	return err
}

// SelectRows reads every row of the project table, returning values in the
// order of the requested columns. The read schema is the registry's declared
// column list, not backend row metadata.
func (r *TableRepository) SelectRows(ctx context.Context, tableName string, encodedColumns []string) ([][]any, error) {
	cols := make([]string, len(encodedColumns))
	for i, c := range encodedColumns {
		cols[i] = pgx.Identifier{c}.Sanitize()
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "),
		pgx.Identifier{tableName}.Sanitize(),
		pgx.Identifier{ReservedTimestampColumn}.Sanitize(),
	)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		result = append(result, values)
	}

	return result, rows.Err()
}
