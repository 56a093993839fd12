package routes

import (
	"github.com/swiftstatic/swiftstatic/internal/api/middleware"
	"github.com/swiftstatic/swiftstatic/internal/logging"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware, logger *logging.Logger) {
	SetupHealthRoutes(router, h)
	SetupFormRoutes(router, h.Forms, m)

	// Everything else is the site
	router.GET("/", h.Static.Serve)
	router.HEAD("/", h.Static.Serve)
	router.NoRoute(h.Static.Serve)

	logger.Debug("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, serviceName string, logger *logging.Logger, flood middleware.RateLimitConfig, allowedOrigins []string) {
	router.Use(middleware.Recovery(logger))
	router.Use(otelgin.Middleware(serviceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RateLimitMiddleware(flood))
}
