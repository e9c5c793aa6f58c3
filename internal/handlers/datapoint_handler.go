package handlers

import (
	"errors"
	"net/http"

	"fieldstore/internal/models"
	"fieldstore/internal/responses"
	"fieldstore/internal/services"

	"github.com/gin-gonic/gin"
)

type DatapointHandler struct {
	projectService   *services.ProjectService
	datapointService *services.DatapointService
}

func NewDatapointHandler(projectService *services.ProjectService, datapointService *services.DatapointService) *DatapointHandler {
	return &DatapointHandler{
		projectService:   projectService,
		datapointService: datapointService,
	}
}

// AddDatapoint handles POST /api/v1/projects/:name/datapoints
//
// Fields come from the JSON body object; when the body is empty they are
// taken from the URL query parameters instead. An unknown project is created
// on first ingestion.
func (h *DatapointHandler) AddDatapoint(c *gin.Context) {
	name := c.Param("name")

	fields := map[string]string{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&fields); err != nil {
			responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
			return
		}
	} else {
		for key, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
	}

	if len(fields) == 0 {
		responses.Fail(c, http.StatusBadRequest, nil, "Datapoint has no fields")
		return
	}

	project, err := h.projectService.GetOrCreateProject(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, models.ErrEmptyIdentifier) {
			responses.Fail(c, http.StatusBadRequest, err, "Project name is not a usable identifier")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to resolve project")
		return
	}

	if err := h.datapointService.AddDatapoint(c.Request.Context(), project, fields); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyIdentifier), errors.Is(err, models.ErrReservedName):
			responses.Fail(c, http.StatusBadRequest, err, "Field name is not usable")
		case errors.Is(err, models.ErrTypeMismatch):
			responses.Fail(c, http.StatusBadRequest, err, "Field value does not match column type")
		case errors.Is(err, models.ErrSchemaConflict):
			responses.Fail(c, http.StatusConflict, err, "Field conflicts with an existing column")
		default:
			responses.Fail(c, http.StatusInternalServerError, err, "Failed to store datapoint")
		}
		return
	}

	responses.Success(c, http.StatusCreated, nil, "Datapoint stored successfully")
}

// GetRows handles GET /api/v1/projects/:name/rows
func (h *DatapointHandler) GetRows(c *gin.Context) {
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

	rows, err := h.datapointService.GetRows(c.Request.Context(), project)
	if err != nil {
		if errors.Is(err, models.ErrCorruptMetadata) {
			responses.Fail(c, http.StatusInternalServerError, err, "Project metadata is corrupt")
			return
		}
		responses.Fail(c, http.StatusInternalServerError, err, "Failed to retrieve rows")
		return
	}

	responses.Success(c, http.StatusOK, rows, "Rows retrieved successfully")
}
