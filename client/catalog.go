package client

import (
	"context"
	"fmt"
)

// CatalogService handles product reads and enrichment triggers.
type CatalogService struct {
	c *Client
}

// Get fetches one product by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := s.c.get(ctx, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Enrich queues an enrichment run for the product and returns immediately.
func (s *CatalogService) Enrich(ctx context.Context, id int64) error {
	return s.c.post(ctx, fmt.Sprintf("/api/products/%d/enrich", id), nil, nil)
}

// EnrichSync runs the enrichment pipeline inline and returns the stored metadata.
func (s *CatalogService) EnrichSync(ctx context.Context, id int64) (*EnrichResult, error) {
	var result EnrichResult
	if err := s.c.post(ctx, fmt.Sprintf("/api/products/%d/enrich?sync=true", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BackfillEmbeddings queues enrichment for all products missing an embedding
// and returns the number of queued jobs.
func (s *CatalogService) BackfillEmbeddings(ctx context.Context) (int, error) {
	var resp struct {
		Queued int `json:"queued"`
	}
	if err := s.c.post(ctx, "/api/admin/backfill-embeddings", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Queued, nil
}
