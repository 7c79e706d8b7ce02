package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/matjarly/matjar/internal/dbpool"
	"github.com/matjarly/matjar/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log                 *logrus.Logger
	Pool                *dbpool.Pool
	Catalog             CatalogRepository
	Search              Searcher
	Enricher            Enricher
	EnrichQueue         EnrichQueue
	CORSOrigins         []string
	Version             string
	OllamaURL           string
	EmbeddingModel      string
	EmbeddingDimensions int
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB; the API carries no large payloads
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Catalog, log, deps.Version, deps.OllamaURL, deps.EmbeddingModel, deps.EmbeddingDimensions)
	search := NewSearchHandler(deps.Search, log)
	products := NewProductHandler(deps.Catalog, deps.Enricher, deps.EnrichQueue, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	api.GET("/search", search.Search)

	api.GET("/products/:id", products.Get)
	api.POST("/products/:id/enrich", products.Enrich)

	api.POST("/admin/backfill-embeddings", products.BackfillEmbeddings)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group("/api"), deps)

	return r
}
