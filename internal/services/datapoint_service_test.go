package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"fieldstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDatapointRoundTrip(t *testing.T) {
	projectService, _, datapointService := newTestServices()
	ctx := context.Background()

	project, err := projectService.CreateProject(ctx, "roundtrip_project")
	require.NoError(t, err)

	err = datapointService.AddDatapoint(ctx, project, map[string]string{"x": "5"})
	require.NoError(t, err)

	rows, err := datapointService.GetRows(ctx, project)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "5", rows[0].Fields["x"])
	assert.False(t, rows[0].Timestamp.IsZero())
	assert.NotContains(t, rows[0].Fields, "timestamp")
}

func TestAddDatapointScenario(t *testing.T) {
	projectService, schemaService, datapointService := newTestServices()
	ctx := context.Background()

	project, err := projectService.CreateProject(ctx, "demo")
	require.NoError(t, err)

	err = datapointService.AddDatapoint(ctx, project, map[string]string{
		"temp": "21.5",
		"unit": "C",
	})
	require.NoError(t, err)

	columns, err := schemaService.GetColumns(ctx, project)
	require.NoError(t, err)
	require.Len(t, columns, 2)

	names := []string{columns[0].Name, columns[1].Name}
	assert.ElementsMatch(t, []string{"temp", "unit"}, names)

	rows, err := datapointService.GetRows(ctx, project)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "21.5", rows[0].Fields["temp"])
	assert.Equal(t, "C", rows[0].Fields["unit"])
}

func TestAddDatapointTypeMismatch(t *testing.T) {
	projectService, schemaService, datapointService := newTestServices()
	ctx := context.Background()

	project, err := projectService.CreateProject(ctx, "mismatch_project")
	require.NoError(t, err)

	_, err = schemaService.AddColumn(ctx, project, "count", models.TypeInteger)
	require.NoError(t, err)

	err = datapointService.AddDatapoint(ctx, project, map[string]string{"count": "not a number"})
	assert.ErrorIs(t, err, models.ErrTypeMismatch)

	// The rejected datapoint must not be partially applied.
	rows, err := datapointService.GetRows(ctx, project)
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = datapointService.AddDatapoint(ctx, project, map[string]string{"count": "42"})
	require.NoError(t, err)

	rows, err = datapointService.GetRows(ctx, project)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(42), rows[0].Fields["count"])
}

func TestAddDatapointEmptyFieldName(t *testing.T) {
	projectService, _, datapointService := newTestServices()
	ctx := context.Background()

	project, err := projectService.CreateProject(ctx, "empty_field_project")
	require.NoError(t, err)

	err = datapointService.AddDatapoint(ctx, project, map[string]string{"!!!": "value"})
	assert.ErrorIs(t, err, models.ErrEmptyIdentifier)
}

func TestAddDatapointReservedField(t *testing.T) {
	projectService, _, datapointService := newTestServices()
	ctx := context.Background()

	project, err := projectService.CreateProject(ctx, "reserved_field_project")
	require.NoError(t, err)

	err = datapointService.AddDatapoint(ctx, project, map[string]string{"timestamp": "123"})
	assert.ErrorIs(t, err, models.ErrReservedName)
}

func TestAddDatapointSparseRows(t *testing.T) {
	projectService, _, datapointService := newTestServices()
	ctx := context.Background()

	project, err := projectService.CreateProject(ctx, "sparse_project")
	require.NoError(t, err)

	require.NoError(t, datapointService.AddDatapoint(ctx, project, map[string]string{"a": "1"}))
	require.NoError(t, datapointService.AddDatapoint(ctx, project, map[string]string{"b": "2"}))

	rows, err := datapointService.GetRows(ctx, project)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Columns the row never set are omitted, not reported as empty values.
	for _, row := range rows {
		assert.Len(t, row.Fields, 1)
	}
}

func TestConcurrentDatapointsDisjointColumns(t *testing.T) {
	projectService, schemaService, datapointService := newTestServices()
	ctx := context.Background()

	project, err := projectService.CreateProject(ctx, "concurrent_project")
	require.NoError(t, err)

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			field := fmt.Sprintf("field_%d", i)
			errs[i] = datapointService.AddDatapoint(ctx, project, map[string]string{field: "v"})
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
	}

	columns, err := schemaService.GetColumns(ctx, project)
	require.NoError(t, err)
	assert.Len(t, columns, workers, "every concurrent writer must register exactly one column")

	rows, err := datapointService.GetRows(ctx, project)
	require.NoError(t, err)
	assert.Len(t, rows, workers)
}

func TestConcurrentDatapointsSameNewColumn(t *testing.T) {
	projectService, schemaService, datapointService := newTestServices()
	ctx := context.Background()

	project, err := projectService.CreateProject(ctx, "shared_column_project")
	require.NoError(t, err)

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = datapointService.AddDatapoint(ctx, project, map[string]string{"shared": fmt.Sprintf("%d", i)})
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
	}

	// One creation wins, the others resolve to it.
	columns, err := schemaService.GetColumns(ctx, project)
	require.NoError(t, err)
	assert.Len(t, columns, 1)

	rows, err := datapointService.GetRows(ctx, project)
	require.NoError(t, err)
	assert.Len(t, rows, workers)
}
