package services

import (
	"context"
	"fmt"
	"time"

	"fieldstore/internal/models"
	"fieldstore/internal/repositories"
	"fieldstore/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaService resolves logical field names to registered columns, creating
// missing ones on demand. Each creation evolves the schema as one atomic
// unit: the physical ALTER and the registry insert either both commit or
// both roll back.
type SchemaService struct {
	pool         *pgxpool.Pool
	registryRepo *repositories.RegistryRepository
	tableRepo    *repositories.TableRepository
}

func NewSchemaService(
	pool *pgxpool.Pool,
	registryRepo *repositories.RegistryRepository,
	tableRepo *repositories.TableRepository,
) *SchemaService {
	return &SchemaService{
		pool:         pool,
		registryRepo: registryRepo,
		tableRepo:    tableRepo,
	}
}

// GetColumns lists all registered columns of a project in first-seen order.
// A registry row that fails to decode surfaces ErrCorruptMetadata.
func (s *SchemaService) GetColumns(ctx context.Context, project *models.Project) ([]models.Column, error) {
	raws, err := s.registryRepo.ListColumns(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of project %q: %w", project.Name, err)
	}

	columns := make([]models.Column, 0, len(raws))
	for _, raw := range raws {
		column, err := raw.Decode()
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", project.Name, err)
		}
		columns = append(columns, column)
	}

	return columns, nil
}

// GetOrCreateColumns resolves the requested field names in caller order.
// The Nth result always corresponds to the Nth requested name, whether the
// column pre-existed or was just created; a duplicate name later in the same
// batch resolves to the column created for its first occurrence.
func (s *SchemaService) GetOrCreateColumns(ctx context.Context, project *models.Project, requestedNames []string) ([]models.Column, error) {
	existing, err := s.GetColumns(ctx, project)
	if err != nil {
		return nil, err
	}

	index := make(map[string]models.Column, len(existing))
	for _, column := range existing {
		index[column.Name] = column
	}

	result := make([]models.Column, 0, len(requestedNames))
	for _, name := range requestedNames {
		if column, ok := index[name]; ok {
			result = append(result, column)
			continue
		}

		column, err := s.AddColumn(ctx, project, name, models.TypeText)
		if err != nil {
			return nil, err
		}

		index[name] = column
		result = append(result, column)
	}

	return result, nil
}

// AddColumn registers a new column for the project, altering the physical
// table and inserting the registry row inside one transaction. Schema
// changes for a project are serialized through an advisory lock keyed by the
// project id; a lost creation race is recovered by re-reading the registry
// once instead of failing the caller.
func (s *SchemaService) AddColumn(ctx context.Context, project *models.Project, name string, dataType models.DataType) (models.Column, error) {
	encoded, _ := utils.SQLEncode(name)
	if encoded == "" {
		return models.Column{}, fmt.Errorf("column name %q: %w", name, models.ErrEmptyIdentifier)
	}
	if encoded == repositories.ReservedTimestampColumn {
		return models.Column{}, fmt.Errorf("column name %q: %w", name, models.ErrReservedName)
	}

	column, err := s.createColumn(ctx, project, name, encoded, dataType)
	if err == nil {
		return column, nil
	}
	if !repositories.IsSchemaConflict(err) {
		return models.Column{}, err
	}

	// A concurrent writer may have created the same column first. One
	// bounded retry through the registry; anything still missing is a real
	// conflict, e.g. a different logical name occupying the same encoded
	// identifier.
	raw, findErr := s.registryRepo.FindColumn(ctx, s.pool, project.ID, name)
	if findErr != nil {
		return models.Column{}, fmt.Errorf("failed to re-read column %q of project %q: %w", name, project.Name, findErr)
	}
	if raw == nil {
		return models.Column{}, fmt.Errorf("column %q (encoded %q) of project %q: %w", name, encoded, project.Name, models.ErrSchemaConflict)
	}

	return raw.Decode()
}

func (s *SchemaService) createColumn(ctx context.Context, project *models.Project, name, encoded string, dataType models.DataType) (models.Column, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Column{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize schema evolution per project. Plain datapoint inserts do not
	// take this lock and proceed in parallel.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", project.ID); err != nil {
		return models.Column{}, fmt.Errorf("failed to lock project %q for schema change: %w", project.Name, err)
	}

	// Re-check under the lock; the column may have appeared while we waited.
	if raw, err := s.registryRepo.FindColumn(ctx, tx, project.ID, name); err != nil {
		return models.Column{}, fmt.Errorf("failed to look up column %q of project %q: %w", name, project.Name, err)
	} else if raw != nil {
		return raw.Decode()
	}

	// ALTER first so a failing registry insert rolls the physical change
	// back with the transaction.
	if err := s.tableRepo.AddColumn(ctx, tx, project.EncodedName, encoded, dataType.ToSQL()); err != nil {
		return models.Column{}, fmt.Errorf("failed to add column %q to table %q: %w", encoded, project.EncodedName, err)
	}

	raw := models.RawColumn{
		ProjectID:   project.ID,
		Name:        name,
		EncodedName: encoded,
		ColumnType:  dataType.ToSQL(),
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.registryRepo.InsertColumn(ctx, tx, raw); err != nil {
		return models.Column{}, fmt.Errorf("failed to register column %q of project %q: %w", name, project.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Column{}, fmt.Errorf("failed to commit column %q of project %q: %w", name, project.Name, err)
	}

	return raw.Decode()
}
