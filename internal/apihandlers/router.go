package apihandlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID echoes the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// NewRouter wires the API routes.
func NewRouter(h *APIHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", h.AnalyzeHandler)
		v1.GET("/analyze", h.AnalyzeQueryHandler)
		v1.POST("/categorize", h.CategorizeHandler)
		v1.GET("/categorize", h.TrendingHandler)
		v1.POST("/jobs/categorize", h.EnqueueCategorizeHandler)
	}

	router.GET("/health", h.HealthHandler)
	router.NoRoute(func(c *gin.Context) {
		NotFound(c, "Route not found")
	})
	return router
}
