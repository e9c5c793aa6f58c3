package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fieldstore/internal/models"
	"fieldstore/internal/repositories"
	"fieldstore/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectService manages the project lifecycle: creation of the dynamic
// wide table together with its registry row, and lookups by logical name.
type ProjectService struct {
	pool         *pgxpool.Pool
	registryRepo *repositories.RegistryRepository
	tableRepo    *repositories.TableRepository
}

func NewProjectService(
	pool *pgxpool.Pool,
	registryRepo *repositories.RegistryRepository,
	tableRepo *repositories.TableRepository,
) *ProjectService {
	return &ProjectService{
		pool:         pool,
		registryRepo: registryRepo,
		tableRepo:    tableRepo,
	}
}

// CreateProject creates the physical table and the registry row as one
// transactional unit. A duplicate logical name, or a physical table name
// collision from lossy encoding of a different logical name, fails with
// ErrSchemaConflict and leaves nothing behind.
func (s *ProjectService) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	encoded, lossy := utils.SQLEncode(name)
	if encoded == "" {
		return nil, fmt.Errorf("project name %q: %w", name, models.ErrEmptyIdentifier)
	}
	if lossy {
		log.Printf("Project name %q encoded lossily to %q", name, encoded)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.tableRepo.CreateTable(ctx, tx, encoded); err != nil {
		if repositories.IsSchemaConflict(err) {
			return nil, fmt.Errorf("project %q (table %q): %w", name, encoded, models.ErrSchemaConflict)
		}
		return nil, fmt.Errorf("failed to create table for project %q: %w", name, err)
	}

	raw, err := s.registryRepo.InsertProject(ctx, tx, name, encoded, time.Now().Unix())
	if err != nil {
		if repositories.IsSchemaConflict(err) {
			return nil, fmt.Errorf("project %q: %w", name, models.ErrSchemaConflict)
		}
		return nil, fmt.Errorf("failed to register project %q: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit project %q: %w", name, err)
	}

	project := raw.Decode()
	return &project, nil
}

// GetProject returns nil without error when the project does not exist.
func (s *ProjectService) GetProject(ctx context.Context, name string) (*models.Project, error) {
	raw, err := s.registryRepo.FindProjectByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up project %q: %w", name, err)
	}
	if raw == nil {
		return nil, nil
	}

	project := raw.Decode()
	return &project, nil
}

// GetOrCreateProject resolves a project by name, creating it on first use.
// When a concurrent caller wins the creation race the conflict is absorbed
// by re-reading the now-existing project instead of failing.
func (s *ProjectService) GetOrCreateProject(ctx context.Context, name string) (*models.Project, error) {
	project, err := s.GetProject(ctx, name)
	if err != nil {
		return nil, err
	}
	if project != nil {
		return project, nil
	}

	project, err = s.CreateProject(ctx, name)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, models.ErrSchemaConflict) {
		return nil, err
	}

	// Lost a concurrent create; the project must exist now.
	project, getErr := s.GetProject(ctx, name)
	if getErr != nil {
		return nil, getErr
	}
	if project == nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	raws, err := s.registryRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]models.Project, 0, len(raws))
	for _, raw := range raws {
		projects = append(projects, raw.Decode())
	}

	return projects, nil
}
