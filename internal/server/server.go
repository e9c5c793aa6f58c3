package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"fieldstore/internal/database"
	"fieldstore/internal/handlers"
	"fieldstore/internal/middlewares"
	"fieldstore/internal/repositories"
	"fieldstore/internal/routes"
	"fieldstore/internal/services"
)

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 3000
	}

	pool, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Dependency injection
	registryRepo := repositories.NewRegistryRepository(pool)
	tableRepo := repositories.NewTableRepository(pool)
	projectService := services.NewProjectService(pool, registryRepo, tableRepo)
	schemaService := services.NewSchemaService(pool, registryRepo, tableRepo)
	datapointService := services.NewDatapointService(schemaService, tableRepo)
	projectHandler := handlers.NewProjectHandler(projectService, schemaService)
	datapointHandler := handlers.NewDatapointHandler(projectService, datapointService)

	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middlewares.RequestID)
	routes.RegisterRoutes(router, projectHandler, datapointHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
