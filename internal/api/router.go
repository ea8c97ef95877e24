package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmyeomans/RS2.1/internal/config"
	"github.com/tmyeomans/RS2.1/internal/database"
	"github.com/tmyeomans/RS2.1/internal/handler"
	"github.com/tmyeomans/RS2.1/internal/middleware"
	"github.com/tmyeomans/RS2.1/internal/pipeline"
	"github.com/tmyeomans/RS2.1/internal/repository"
)

// SetupRouter wires the HTTP routes for the run registry.
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(100, time.Minute))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Sampling registry API is running",
		})
	})

	db := database.GetDB()
	runs := repository.NewRunRepository(db)
	samples := repository.NewSampleRepository(db)
	plots := repository.NewPlotRepository(db)
	runner := pipeline.NewRunner(cfg, db)

	runHandler := handler.NewRunHandler(runs, runner)
	sampleHandler := handler.NewSampleHandler(samples)
	plotHandler := handler.NewPlotHandler(plots)

	api := r.Group("/api/v1")
	{
		api.GET("/runs", runHandler.ListRuns)
		api.GET("/runs/:id", runHandler.GetRun)
		api.GET("/runs/:id/samples", sampleHandler.GetSamples)
		api.GET("/runs/:id/strata", sampleHandler.GetStrata)
		api.GET("/runs/:id/plots", plotHandler.GetPlots)

		// Starting a run is the only mutating endpoint. It requires a
		// token when a JWT secret is configured.
		create := api.Group("")
		if cfg.JWTSecret != "" {
			create.Use(middleware.JWTAuth(cfg.JWTSecret))
		}
		create.POST("/runs", runHandler.CreateRun)
	}

	return r
}
