package api_test

import (
	"context"
	"sync"

	"github.com/matjarly/matjar/internal/models"
)

// mockSearcher implements api.Searcher for testing.
type mockSearcher struct {
	searchFn func(ctx context.Context, req models.SearchRequest) ([]models.RankedProduct, error)

	lastReq models.SearchRequest
}

func (m *mockSearcher) Search(ctx context.Context, req models.SearchRequest) ([]models.RankedProduct, error) {
	m.lastReq = req

	return m.searchFn(ctx, req)
}

// mockCatalog implements api.CatalogRepository for testing.
type mockCatalog struct {
	getFn     func(ctx context.Context, id int64) (*models.Product, error)
	pendingFn func(ctx context.Context, limit int) ([]models.ProductSummary, error)
	countFn   func(ctx context.Context) (int64, error)
}

func (m *mockCatalog) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return m.getFn(ctx, id)
}

func (m *mockCatalog) ListPendingEmbeddings(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	return m.pendingFn(ctx, limit)
}

func (m *mockCatalog) CountPendingEmbeddings(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}

// mockEnricher implements api.Enricher for testing.
type mockEnricher struct {
	enrichFn func(ctx context.Context, productID int64) (*models.ProductMetadata, error)
}

func (m *mockEnricher) Enrich(ctx context.Context, productID int64) (*models.ProductMetadata, error) {
	return m.enrichFn(ctx, productID)
}

// mockQueue records enqueued product IDs.
type mockQueue struct {
	mu  sync.Mutex
	ids []int64
}

func (m *mockQueue) Enqueue(productID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append(m.ids, productID)
}

func (m *mockQueue) queued() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]int64, len(m.ids))
	copy(out, m.ids)

	return out
}
