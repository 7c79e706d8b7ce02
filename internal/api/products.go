package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/matjarly/matjar/internal/models"
)

// backfillBatchSize caps how many products one backfill call enqueues.
const backfillBatchSize = 1000

// ProductHandler serves catalog product endpoints.
type ProductHandler struct {
	catalog  CatalogRepository
	enricher Enricher
	queue    EnrichQueue
	log      *logrus.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(catalog CatalogRepository, enricher Enricher, queue EnrichQueue, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, enricher: enricher, queue: queue, log: log}
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "product not found")

			return
		}

		h.log.WithError(err).WithField("product_id", id).Error("loading product")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, product)
}

// Enrich handles POST /api/products/:id/enrich.
// The default is fire-and-forget: the job is queued and the call returns 202
// immediately. With ?sync=true the pipeline runs inline and the response
// carries the stored metadata.
func (h *ProductHandler) Enrich(c *gin.Context) {
	id, err := parseProductID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if c.Query("sync") != "true" {
		h.queue.Enqueue(id)
		c.JSON(http.StatusAccepted, gin.H{"queued": true, "product_id": id})

		return
	}

	metadata, err := h.enricher.Enrich(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "product not found")

			return
		}

		h.log.WithError(err).WithField("product_id", id).Error("synchronous enrichment failed")
		respondError(c, http.StatusBadGateway, ErrCodeInternalError, "enrichment failed")

		return
	}

	c.JSON(http.StatusOK, gin.H{"product_id": id, "metadata": metadata})
}

// BackfillEmbeddings handles POST /api/admin/backfill-embeddings. It queues
// enrichment for searchable products that have no embedding yet, typically
// after a bulk import or an embedding model change.
func (h *ProductHandler) BackfillEmbeddings(c *gin.Context) {
	products, err := h.catalog.ListPendingEmbeddings(c.Request.Context(), backfillBatchSize)
	if err != nil {
		h.log.WithError(err).Error("listing products without embeddings")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	for _, p := range products {
		h.queue.Enqueue(p.ID)
	}

	h.log.WithFields(logrus.Fields{"queued": len(products)}).Info("embedding backfill queued")

	c.JSON(http.StatusOK, gin.H{"queued": len(products)})
}
