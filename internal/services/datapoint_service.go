package services

import (
	"context"
	"fmt"
	"time"

	"fieldstore/internal/models"
	"fieldstore/internal/repositories"
)

// DatapointService writes datapoints into a project's wide table and reads
// them back through the registry's declared schema.
type DatapointService struct {
	schemaService *SchemaService
	tableRepo     *repositories.TableRepository
}

func NewDatapointService(
	schemaService *SchemaService,
	tableRepo *repositories.TableRepository,
) *DatapointService {
	return &DatapointService{
		schemaService: schemaService,
		tableRepo:     tableRepo,
	}
}

// AddDatapoint ingests one datapoint. Field order is captured once from the
// mapping and fixed for the rest of the call: the resolved columns, the
// insert column list and the bound values all follow it. A value that cannot
// be stored as its column's declared type fails the whole datapoint with
// ErrTypeMismatch; nothing is partially applied.
func (s *DatapointService) AddDatapoint(ctx context.Context, project *models.Project, fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	columns, err := s.schemaService.GetOrCreateColumns(ctx, project, names)
	if err != nil {
		return err
	}

	encodedColumns := make([]string, 0, len(columns)+1)
	values := make([]any, 0, len(columns)+1)

	encodedColumns = append(encodedColumns, repositories.ReservedTimestampColumn)
	values = append(values, time.Now().Unix())

	for i, column := range columns {
		value, err := column.Type.ParseValue(fields[names[i]])
		if err != nil {
			return fmt.Errorf("field %q of project %q: %w", column.Name, project.Name, err)
		}
		encodedColumns = append(encodedColumns, column.EncodedName)
		values = append(values, value)
	}

	if err := s.tableRepo.InsertRow(ctx, project.EncodedName, encodedColumns, values); err != nil {
		return fmt.Errorf("failed to insert datapoint into project %q: %w", project.Name, err)
	}

	return nil
}

// GetRows reads all datapoints of a project. The returned field maps are
// keyed by logical column name and exclude the reserved timestamp, which is
// carried separately on each row. Unset columns are omitted from the map.
func (s *DatapointService) GetRows(ctx context.Context, project *models.Project) ([]models.Row, error) {
	columns, err := s.schemaService.GetColumns(ctx, project)
	if err != nil {
		return nil, err
	}

	encodedColumns := make([]string, 0, len(columns)+1)
	encodedColumns = append(encodedColumns, repositories.ReservedTimestampColumn)
	for _, column := range columns {
		encodedColumns = append(encodedColumns, column.EncodedName)
	}

	raw, err := s.tableRepo.SelectRows(ctx, project.EncodedName, encodedColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of project %q: %w", project.Name, err)
	}

	rows := make([]models.Row, 0, len(raw))
	for _, values := range raw {
		epoch, ok := values[0].(int64)
		if !ok {
			return nil, fmt.Errorf("project %q: unexpected timestamp value %v: %w", project.Name, values[0], models.ErrCorruptMetadata)
		}

		row := models.Row{
			Timestamp: time.Unix(epoch, 0).UTC(),
			Fields:    make(map[string]any, len(columns)),
		}
		for i, column := range columns {
			if values[i+1] == nil {
				continue
			}
			row.Fields[column.Name] = values[i+1]
		}

		rows = append(rows, row)
	}

	return rows, nil
}
