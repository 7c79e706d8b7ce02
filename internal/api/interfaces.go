package api

import (
	"context"

	"github.com/matjarly/matjar/internal/models"
)

// Searcher answers ranked product searches. Implemented by service.SearchService.
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) ([]models.RankedProduct, error)
}

// Enricher runs the enrichment pipeline for one product synchronously.
// Implemented by service.EnrichmentService.
type Enricher interface {
	Enrich(ctx context.Context, productID int64) (*models.ProductMetadata, error)
}

// EnrichQueue accepts fire-and-forget enrichment jobs.
// Implemented by service.EnrichWorker.
type EnrichQueue interface {
	Enqueue(productID int64)
}

// CatalogRepository defines the catalog reads used by the product handlers.
type CatalogRepository interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListPendingEmbeddings(ctx context.Context, limit int) ([]models.ProductSummary, error)
	CountPendingEmbeddings(ctx context.Context) (int64, error)
}
