package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/matjarly/matjar/internal/metrics"
	"github.com/matjarly/matjar/internal/models"
)

// maxSearchQueryLen caps the length of search query strings.
const maxSearchQueryLen = 500

// defaultSearchLimit is the page size when the caller omits limit.
const defaultSearchLimit = 50

// SearchHandler serves the product search endpoint.
type SearchHandler struct {
	search Searcher
	log    *logrus.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(search Searcher, log *logrus.Logger) *SearchHandler {
	return &SearchHandler{search: search, log: log}
}

// Search handles GET /api/search?q=&limit=&offset=&max_price=.
func (h *SearchHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "query parameter q is required")

		return
	}

	if len(q) > maxSearchQueryLen {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, models.ErrFieldTooLong("q", maxSearchQueryLen).Error())

		return
	}

	req := models.SearchRequest{
		Query:    q,
		Limit:    parseInt(c.Query("limit"), defaultSearchLimit),
		Offset:   parseOffset(c.Query("offset")),
		MaxPrice: parsePrice(c.Query("max_price")),
	}

	start := time.Now()

	results, err := h.search.Search(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyQuery):
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "query must not be blank")
		case errors.Is(err, models.ErrSearchUnavailable):
			metrics.SearchDuration.WithLabelValues("unavailable").Observe(time.Since(start).Seconds())
			h.log.WithError(err).Error("search unavailable")
			respondError(c, http.StatusBadGateway, ErrCodeSearchUnavailable, "search unavailable")
		default:
			metrics.SearchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
			h.log.WithError(err).Error("search failed")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	metrics.SearchDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	h.log.WithFields(logrus.Fields{
		"query":   q,
		"results": len(results),
		"offset":  req.Offset,
	}).Debug("search served")

	c.JSON(http.StatusOK, gin.H{"results": results, "total": len(results)})
}
