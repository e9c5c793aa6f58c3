package handlers

import (
	"errors"
	"net/http"
	"strings"

	"fieldstore/internal/models"
	"fieldstore/internal/responses"
	"fieldstore/internal/services"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	schemaService  *services.SchemaService
}

func NewProjectHandler(projectService *services.ProjectService, schemaService *services.SchemaService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		schemaService:  schemaService,
	}
}

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddColumnRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
}

// CreateProject handles POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if strings.Contains(req.Name, "/") {
		responses.Fail(c, http.StatusBadRequest, nil, "Project name cannot contain a '/'")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSchemaConflict):
			responses.Fail(c, http.StatusConflict, err, "Project already exists")
		case errors.Is(err, models.ErrEmptyIdentifier):
			responses.Fail(c, http.StatusBadRequest, err, "Project name is not a usable identifier")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to create project")
		}
		return
	}

	responses.Success(c, http.StatusCreated, project, "Project created successfully")
}

// GetProject handles GET /api/v1/projects/:name
func (h *ProjectHandler) GetProject(c *gin.Context) {
	name := c.Param("name")

	project, err := h.projectService.GetProject(c.Request.Context(), name)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve project")
		return
	}
	if project == nil {
		responses.Fail(c, http.StatusNotFound, nil, "Project not found")
		return
	}

	responses.Success(c, http.StatusOK, project, "Project retrieved successfully")
}

// ListProjects handles GET /api/v1/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve projects")
		return
	}

	responses.Success(c, http.StatusOK, projects, "Projects retrieved successfully")
}

// ListColumns handles GET /api/v1/projects/:name/columns
func (h *ProjectHandler) ListColumns(c *gin.Context) {
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	columns, err := h.schemaService.GetColumns(c.Request.Context(), project)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve columns")
		return
	}

	responses.Success(c, http.StatusOK, columns, "Columns retrieved successfully")
}

// AddColumn handles POST /api/v1/projects/:name/columns
func (h *ProjectHandler) AddColumn(c *gin.Context) {
	project, ok := h.resolveProject(c)
	if !ok {
		return
	}

	var req AddColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	dataType := models.TypeText
	if req.Type != "" {
		var err error
		dataType, err = models.ParseDataType(req.Type)
		if err != nil {
			responses.Fail(c, http.StatusBadRequest, err, "Unknown column type")
			return
		}
	}

	column, err := h.schemaService.AddColumn(c.Request.Context(), project, req.Name, dataType)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyIdentifier), errors.Is(err, models.ErrReservedName):
			responses.Fail(c, http.StatusBadRequest, err, "Column name is not usable")
		case errors.Is(err, models.ErrSchemaConflict):
			responses.Fail(c, http.StatusConflict, err, "Column conflicts with an existing one")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to add column")
		}
		return
	}

	responses.Success(c, http.StatusCreated, column, "Column added successfully")
}

func (h *ProjectHandler) resolveProject(c *gin.Context) (*models.Project, bool) {
	name := c.Param("name")

	project, err := h.projectService.GetProject(c.Request.Context(), name)
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve project")
		return nil, false
	}
	if project == nil {
		responses.Fail(c, http.StatusNotFound, nil, "Project not found")
		return nil, false
	}

	return project, true
}
