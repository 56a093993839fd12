package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes configures health check and metrics endpoints
func SetupHealthRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.Health.Check)
	router.HEAD("/health", h.Health.Check)

	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}
}
