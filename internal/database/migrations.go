package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations bootstraps the registry tables. The per-project wide tables
// are created at runtime and are deliberately not part of the migrations.
func RunMigrations(pool *pgxpool.Pool) error {
	ctx := context.Background()

	migrations := []string{
		createProjectsTable,
		createColumnsTable,
	}

	for i, migration := range migrations {
		log.Printf("Running migration %d/%d", i+1, len(migrations))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Println("All migrations completed successfully")
	return nil
}

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  encoded_name TEXT NOT NULL UNIQUE,
  created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name);
`

const createColumnsTable = `
CREATE TABLE IF NOT EXISTS columns (
  id BIGSERIAL PRIMARY KEY,
  project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  encoded_name TEXT NOT NULL,
  column_type TEXT NOT NULL,
  created_at BIGINT NOT NULL,
  UNIQUE (project_id, name),
  UNIQUE (project_id, encoded_name)
);

CREATE INDEX IF NOT EXISTS idx_columns_project_id ON columns(project_id);
`
