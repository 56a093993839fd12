package routes

import (
	"net/http"

	"github.com/swiftstatic/swiftstatic/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers contains all the route handlers
type Handlers struct {
	Forms  *handlers.FormHandler
	Health *handlers.HealthHandler
	Static *handlers.StaticHandler
	// Metrics is nil when the endpoint is disabled
	Metrics http.Handler
}

// Middleware contains the per-route middleware
type Middleware struct {
	FormRateLimit gin.HandlerFunc
	BodyLimit     gin.HandlerFunc
}
