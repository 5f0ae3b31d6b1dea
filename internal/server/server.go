package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sanchezegido/recipedia/config"
	"github.com/sanchezegido/recipedia/internal/api"
	"github.com/sanchezegido/recipedia/internal/cache"
	"github.com/sanchezegido/recipedia/internal/database"
	"github.com/sanchezegido/recipedia/internal/i18n"
	"github.com/sanchezegido/recipedia/internal/logging"
	"github.com/sanchezegido/recipedia/internal/metrics"
	"github.com/sanchezegido/recipedia/internal/middleware"
	"github.com/sanchezegido/recipedia/internal/repository"
	"github.com/sanchezegido/recipedia/internal/service"
)

// ShutdownTimeout bounds how long in-flight requests may drain
const ShutdownTimeout = 10 * time.Second

// Deps are the connections the server is built on. Redis may be nil.
type Deps struct {
	DB     *gorm.DB
	Redis  redis.Cmdable
	Logger *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *zap.Logger
	metrics *metrics.Collector
}

// New wires the store, cache, services and routes
func New(cfg *config.Config, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := metrics.NewCollector("recipedia")

	backend, err := newCacheBackend(cfg, deps.Redis, logger)
	if err != nil {
		return nil, err
	}
	layer := cache.NewLayer(backend, logger, m)

	recipes := service.NewRecipeService(
		repository.NewRecipeRepository(deps.DB),
		repository.NewReviewRepository(deps.DB),
		layer,
		service.WithMetrics(m),
		service.WithLogger(logger),
	)
	catalog := i18n.Default()

	var limiter *middleware.RateLimiter
	if deps.Redis != nil && cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(deps.Redis, middleware.RateLimitConfig{
			Window:    cfg.RateLimitWindow,
			Limit:     cfg.RateLimit,
			KeyPrefix: "rate_limit:mutations",
		}, catalog, logger)
	} else {
		logger.Warn("mutation rate limiting disabled")
	}

	api.UseJSONFieldNames()
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(logger), m.Middleware())
	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	}
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api.RegisterRoutes(router, api.Deps{
		Recipes: recipes,
		Tokens:  service.NewTokenService(cfg.JWTSecret, 0),
		Users:   repository.NewUserRepository(deps.DB),
		Limiter: limiter,
		Health: api.NewHealthHandler(
			api.PingFunc(func(ctx context.Context) error { return database.HealthCheck(ctx, deps.DB) }),
			layer,
		),
		Catalog: catalog,
		Logger:  logger,
	})

	return &Server{
		router:  router,
		logger:  logger,
		metrics: m,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// newCacheBackend picks the cache by driver. The redis driver without a
// client degrades to the in-process cache.
func newCacheBackend(cfg *config.Config, client redis.Cmdable, logger *zap.Logger) (cache.Cache, error) {
	switch cfg.CacheDriver {
	case config.CacheNone:
		return cache.Noop{}, nil
	case config.CacheRedis:
		if client != nil {
			return cache.NewRedisCache(client, cfg.CacheTTL, cache.DefaultBreakerConfig(), logger)
		}
		logger.Warn("redis unavailable, using in-process cache")
		fallthrough
	case config.CacheMemory, "":
		return cache.NewMemoryCache(cache.DefaultMemoryConfig(cfg.CacheTTL))
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.CacheDriver)
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
		ExposeHeaders:    []string{"Location", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
