package repositories

import (
	"context"
	"errors"
	"fieldstore/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgx behaviour the repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so schema mutations can run inside a
// transaction while plain reads go straight to the pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RegistryRepository persists the projects and columns metadata tables. It
// never touches the per-project wide tables.
type RegistryRepository struct {
	pool *pgxpool.Pool
}

func NewRegistryRepository(pool *pgxpool.Pool) *RegistryRepository {
	return &RegistryRepository{pool: pool}
}

func (r *RegistryRepository) InsertProject(ctx context.Context, db DB, name, encodedName string, createdAt int64) (models.RawProject, error) {
	query := `
		INSERT INTO projects (name, encoded_name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, name, encoded_name, created_at
	`

	var raw models.RawProject
	err := db.QueryRow(ctx, query, name, encodedName, createdAt).Scan(
		&raw.ID,
		&raw.Name,
		&raw.EncodedName,
		&raw.CreatedAt,
	)
	if err != nil {
		return models.RawProject{}, err
	}

	return raw, nil
}

// FindProjectByName returns nil without error when the project does not
// exist; absence is not a failure.
func (r *RegistryRepository) FindProjectByName(ctx context.Context, name string) (*models.RawProject, error) {
	query := `
		SELECT id, name, encoded_name, created_at
		FROM projects WHERE name = $1
	`

	var raw models.RawProject
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&raw.ID,
		&raw.Name,
		&raw.EncodedName,
		&raw.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &raw, nil
}

func (r *RegistryRepository) ListProjects(ctx context.Context) ([]models.RawProject, error) {
	query := `
		SELECT id, name, encoded_name, created_at
		FROM projects
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.RawProject
	for rows.Next() {
		var raw models.RawProject
		err := rows.Scan(
			&raw.ID,
			&raw.Name,
			&raw.EncodedName,
			&raw.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, raw)
	}

	return projects, rows.Err()
}

func (r *RegistryRepository) InsertColumn(ctx context.Context, db DB, raw models.RawColumn) error {
	query := `
		INSERT INTO columns (project_id, name, encoded_name, column_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := db.Exec(ctx, query,
		raw.ProjectID,
		raw.Name,
		raw.EncodedName,
		raw.ColumnType,
		raw.CreatedAt,
	)

	return err
}

// FindColumn returns nil without error when the column is not registered.
func (r *RegistryRepository) FindColumn(ctx context.Context, db DB, projectID int64, name string) (*models.RawColumn, error) {
	query := `
		SELECT project_id, name, encoded_name, column_type, created_at
		FROM columns WHERE project_id = $1 AND name = $2
	`

	var raw models.RawColumn
	err := db.QueryRow(ctx, query, projectID, name).Scan(
		&raw.ProjectID,
		&raw.Name,
		&raw.EncodedName,
		&raw.ColumnType,
		&raw.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &raw, nil
}

// ListColumns returns the registered columns of a project in creation order,
// which is also the first-seen order of field names.
func (r *RegistryRepository) ListColumns(ctx context.Context, projectID int64) ([]models.RawColumn, error) {
	query := `
		SELECT project_id, name, encoded_name, column_type, created_at
		FROM columns WHERE project_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.RawColumn
	for rows.Next() {
		var raw models.RawColumn
		err := rows.Scan(
			&raw.ProjectID,
			&raw.Name,
			&raw.EncodedName,
			&raw.ColumnType,
			&raw.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		columns = append(columns, raw)
	}

	return columns, rows.Err()
}
