package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/internal/i18n"
	"github.com/sanchezegido/recipedia/internal/middleware"
	"github.com/sanchezegido/recipedia/internal/service"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports the state of the store and the cache. The service is
// unhealthy only when the store is down; a dead cache degrades it.
type HealthHandler struct {
	store   Pinger
	cache   Pinger
	timeout time.Duration
}

func NewHealthHandler(store, cache Pinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache, timeout: 2 * time.Second}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	body := gin.H{"status": "healthy", "database": "up", "cache": "up"}
	if err := h.cache.Ping(ctx); err != nil {
		body["status"] = "degraded"
		body["cache"] = "down"
	}
	if err := h.store.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = "down"
	}
	c.JSON(status, body)
}

// Deps are the collaborators the HTTP routes are wired to
type Deps struct {
	Recipes service.IRecipeService
	Tokens  middleware.TokenValidator
	Users   middleware.UserProvisioner
	// Limiter throttles mutating routes; nil disables rate limiting
	Limiter *middleware.RateLimiter
	Health  *HealthHandler
	Catalog *i18n.Catalog
	Logger  *zap.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Deps) {
	router.GET("/health", deps.Health.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(
		middleware.AuthMiddleware(deps.Tokens, deps.Catalog),
		middleware.EnsureUser(deps.Users, deps.Catalog, deps.Logger),
	)

	var mutate []gin.HandlerFunc
	if deps.Limiter != nil {
		mutate = append(mutate, deps.Limiter.Middleware())
	}
	NewRecipeHandler(deps.Recipes, deps.Catalog, deps.Logger).RegisterRoutes(v1, mutate...)
}
