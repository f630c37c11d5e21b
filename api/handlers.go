package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-composer-engine/internal/analytics"
	"github.com/gcbaptista/go-composer-engine/services"
)

const maxRequestBodySize = 8 << 20 // 8 MiB, enough for large dictionary imports

// API holds dependencies for API handlers, primarily the composer engine manager.
type API struct {
	engine    services.EngineManager
	analytics *analytics.Service
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.EngineManager, dataDir string) *API {
	return &API{
		engine:    engine,
		analytics: analytics.NewService(engine, dataDir),
	}
}

// SetupRoutes defines all the API routes for the composer engine.
func SetupRoutes(router *gin.Engine, engine services.EngineManager, dataDir string) {
	apiHandler := NewAPI(engine, dataDir)

	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler)    // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)            // Get job status by ID
		jobRoutes.POST("/:jobId/cancel", apiHandler.CancelJobHandler) // Cancel a pending or running job
	}

	// Dictionary management routes
	dictionaryRoutes := router.Group("/dictionaries")
	{
		dictionaryRoutes.POST("", apiHandler.CreateDictionaryHandler)                    // Create a new dictionary
		dictionaryRoutes.GET("", apiHandler.ListDictionariesHandler)                     // List all dictionaries
		dictionaryRoutes.GET("/:dictionaryName", apiHandler.GetDictionaryHandler)        // Get dictionary stats
		dictionaryRoutes.DELETE("/:dictionaryName", apiHandler.DeleteDictionaryHandler)  // Delete a dictionary
		dictionaryRoutes.PUT("/:dictionaryName/entries", apiHandler.AddEntriesHandler)   // Add entries
		dictionaryRoutes.POST("/:dictionaryName/import", apiHandler.ImportTSVHandler)    // Async TSV import
		dictionaryRoutes.GET("/:dictionaryName/jobs", apiHandler.ListJobsHandler)        // List jobs for a dictionary
		dictionaryRoutes.POST("/:dictionaryName/persist", apiHandler.PersistDictHandler) // Force a snapshot to disk
	}

	// Composer session routes
	composerRoutes := router.Group("/composers")
	{
		composerRoutes.POST("", apiHandler.CreateComposerHandler)                     // Create a new composer
		composerRoutes.GET("", apiHandler.ListComposersHandler)                       // List all composers
		composerRoutes.GET("/:composerName", apiHandler.GetComposerHandler)           // Get composer state
		composerRoutes.DELETE("/:composerName", apiHandler.DeleteComposerHandler)     // Delete a composer
		composerRoutes.POST("/:composerName/readings", apiHandler.InsertReadingHandler)
		composerRoutes.DELETE("/:composerName/readings", apiHandler.DeleteReadingHandler)
		composerRoutes.PUT("/:composerName/cursor", apiHandler.SetCursorHandler)
		composerRoutes.POST("/:composerName/clear", apiHandler.ClearComposerHandler)
		composerRoutes.GET("/:composerName/walk", apiHandler.WalkHandler)
		composerRoutes.GET("/:composerName/candidates", apiHandler.CandidatesHandler)
		composerRoutes.POST("/:composerName/override", apiHandler.OverrideHandler)
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-composer-engine",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}
