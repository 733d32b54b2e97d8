package api

import (
	"path/filepath"

	"github.com/JustJay7/nyaya-mitra/internal/metrics"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, h *Handlers, m *metrics.Metrics, staticDir string) {
	// Front end
	router.Static("/static", staticDir)
	router.StaticFile("/", filepath.Join(staticDir, "index.html"))
	router.StaticFile("/dashboard", filepath.Join(staticDir, "dashboard.html"))

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := router.Group("/api")
	{
		api.GET("/test", h.Ping)
		api.GET("/health", h.HealthCheck)
		api.GET("/cache/stats", h.CacheStats)

		api.POST("/cases", h.CreateCase)
		api.GET("/cases", h.ListCases)
		api.GET("/cases/:id", h.GetCase)
		api.POST("/cases/:id/generate-judgment", h.GenerateJudgment)
	}
}
