// Package metrics exposes the Prometheus instruments used across the service
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application. Each collector
// owns its registry, so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics, labelled by key namespace
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
	CacheErrors *prometheus.CounterVec

	// Business metrics
	RecipeMutations *prometheus.CounterVec
}

// NewCollector creates a collector whose metric names are prefixed with namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"namespace"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"namespace"},
		),
		CacheErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_errors_total",
				Help:      "Total number of cache operations that failed and were ignored",
			},
			[]string{"operation"},
		),
		RecipeMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipe_mutations_total",
				Help:      "Total number of successful recipe mutations",
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.CacheHits,
		c.CacheMisses,
		c.CacheErrors,
		c.RecipeMutations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry returns the registry backing this collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// CacheHit records a cache hit for the given key namespace
func (c *Collector) CacheHit(namespace string) {
	if c == nil {
		return
	}
	c.CacheHits.WithLabelValues(namespace).Inc()
}

// CacheMiss records a cache miss for the given key namespace
func (c *Collector) CacheMiss(namespace string) {
	if c == nil {
		return
	}
	c.CacheMisses.WithLabelValues(namespace).Inc()
}

// CacheError records a swallowed cache failure
func (c *Collector) CacheError(operation string) {
	if c == nil {
		return
	}
	c.CacheErrors.WithLabelValues(operation).Inc()
}

// RecipeMutation records a successful write of the given kind
func (c *Collector) RecipeMutation(operation string) {
	if c == nil {
		return
	}
	c.RecipeMutations.WithLabelValues(operation).Inc()
}

// Middleware records request counts and latency per matched route
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())
		c.HTTPRequests.WithLabelValues(ctx.Request.Method, route, status).Inc()
		c.HTTPDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
