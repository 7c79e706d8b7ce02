// Package api provides HTTP handlers for the matjar catalog service.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/matjarly/matjar/internal/dbpool"
	"github.com/matjarly/matjar/internal/metrics"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	pool                *dbpool.Pool
	catalog             CatalogRepository
	log                 *logrus.Logger
	httpClient          *http.Client
	version             string
	startTime           time.Time
	ollamaURL           string
	embeddingModel      string
	embeddingDimensions int
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
func NewHealthHandler(pool *dbpool.Pool, catalog CatalogRepository, log *logrus.Logger, version, ollamaURL, embeddingModel string, embeddingDimensions int) *HealthHandler {
	return &HealthHandler{
		pool:                pool,
		catalog:             catalog,
		log:                 log,
		httpClient:          &http.Client{Timeout: 2 * time.Second},
		version:             version,
		startTime:           time.Now(),
		ollamaURL:           ollamaURL,
		embeddingModel:      embeddingModel,
		embeddingDimensions: embeddingDimensions,
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status              string  `json:"status"`
	Version             string  `json:"version"`
	Database            string  `json:"database"`
	Embeddings          string  `json:"embeddings"`
	EmbeddingDimensions int     `json:"embedding_dimensions"`
	UptimeSeconds       float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:              "ok",
		Version:             h.version,
		Database:            "connected",
		Embeddings:          "unavailable",
		EmbeddingDimensions: h.embeddingDimensions,
		UptimeSeconds:       time.Since(h.startTime).Seconds(),
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	} else {
		resp.Database = "not_configured"
	}

	if h.embeddingModel != "" {
		resp.Embeddings = h.embeddingModel
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/ready. The catalog schema and the database must
// be reachable; an Ollama outage only degrades readiness because keyword
// search still works without it.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{
		"database": "ok",
		"schema":   "ok",
		"ollama":   "ok",
	}
	status := "ready"
	statusCode := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.pool.HealthCheck(ctx); err != nil {
		h.log.WithError(err).Error("readiness: database health check failed")
		checks["database"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	if checks["database"] == "ok" {
		pending, err := h.catalog.CountPendingEmbeddings(ctx)
		if err != nil {
			h.log.WithError(err).Error("readiness: schema check failed")
			checks["schema"] = "error"
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		} else {
			metrics.PendingEmbeddings.Set(float64(pending))
			checks["pending_embeddings"] = strconv.FormatInt(pending, 10)
		}
	} else {
		checks["schema"] = "unknown"
	}

	if err := h.checkOllama(); err != nil {
		h.log.WithError(err).Warn("readiness: ollama check failed")
		checks["ollama"] = "degraded"
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}

// checkOllama does a best-effort connectivity check to the Ollama API.
func (h *HealthHandler) checkOllama() error {
	if h.ollamaURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.ollamaURL+"/api/version", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	return nil
}
