package handlers

import (
	"log/slog"

	"escolas-map/logger"
	"escolas-map/metrics"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the dashboard and API routes
func NewRouter(h *APIHandler, l *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.AccessMiddleware(l))

	router.GET("/", h.Dashboard)
	router.GET("/chart.png", h.Chart)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/options", h.GetOptions)
		api.GET("/schools", h.GetSchools)
		api.GET("/markers", h.GetMarkers)

		// Import route
		api.POST("/import", h.ImportSchools)

		api.GET("/ping", PingHandler)
	}
	return router
}
