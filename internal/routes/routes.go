package routes

import (
	"net/http"

	"fieldstore/internal/handlers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, projectHandler *handlers.ProjectHandler, datapointHandler *handlers.DatapointHandler) {
	api := router.Group("/api/v1")

	projectRoutes := NewProjectRoutes(projectHandler, datapointHandler)
	projectRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
