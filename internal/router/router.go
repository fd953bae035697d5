package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "imgtext/docs" // registers the swagger document
	"imgtext/internal/handler"
	"imgtext/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	extractionH *handler.ExtractionHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Recognition routes require the caller's provider key
	recognition := v1.Group("")
	recognition.Use(middleware.RequireCredential())
	recognition.POST("/extract", extractionH.Extract)
	recognition.POST("/analyze-image", extractionH.AnalyzeImage)

	v1.POST("/export", exportH.Export)

	return r
}
