package routes

import (
	"fieldstore/internal/handlers"

	"github.com/gin-gonic/gin"
)

type ProjectRoutes struct {
	projectHandler   *handlers.ProjectHandler
	datapointHandler *handlers.DatapointHandler
}

func NewProjectRoutes(projectHandler *handlers.ProjectHandler, datapointHandler *handlers.DatapointHandler) *ProjectRoutes {
	return &ProjectRoutes{
		projectHandler:   projectHandler,
		datapointHandler: datapointHandler,
	}
}

func (r *ProjectRoutes) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.POST("", r.projectHandler.CreateProject)
		projects.GET("", r.projectHandler.ListProjects)
		projects.GET("/:name", r.projectHandler.GetProject)
		projects.GET("/:name/columns", r.projectHandler.ListColumns)
		projects.POST("/:name/columns", r.projectHandler.AddColumn)
		projects.POST("/:name/datapoints", r.datapointHandler.AddDatapoint)
		projects.GET("/:name/rows", r.datapointHandler.GetRows)
	}
}
