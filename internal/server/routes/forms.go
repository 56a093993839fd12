package routes

import (
	"github.com/swiftstatic/swiftstatic/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupFormRoutes configures the two public form endpoints. They share one
// per-client rate limit.
func SetupFormRoutes(router *gin.Engine, forms *handlers.FormHandler, m *Middleware) {
	api := router.Group("/api")
	api.Use(m.FormRateLimit, m.BodyLimit)
	{
		api.POST("/booking", forms.Booking)
		api.POST("/contact", forms.Contact)
	}
}
