package service

import (
	"context"
	"sync"

	"github.com/matjarly/matjar/internal/models"
)

// mockEnrichmentStore records calls and returns configured responses.
type mockEnrichmentStore struct {
	mu    sync.Mutex
	calls []string

	getProduct       func(ctx context.Context, id int64) (*models.Product, error)
	updateEnrichment func(ctx context.Context, id int64, metadata *models.ProductMetadata, embedding []float32) error
}

func (m *mockEnrichmentStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockEnrichmentStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	m.record("GetProduct")
	return m.getProduct(ctx, id)
}

func (m *mockEnrichmentStore) UpdateEnrichment(ctx context.Context, id int64, metadata *models.ProductMetadata, embedding []float32) error {
	m.record("UpdateEnrichment")
	return m.updateEnrichment(ctx, id, metadata, embedding)
}

// mockEmbedder returns a configured vector or error.
type mockEmbedder struct {
	generate func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	return m.generate(ctx, text)
}

// mockTagSource returns configured metadata or an error.
type mockTagSource struct {
	extractTags func(ctx context.Context, title, description, specs string) (*models.ProductMetadata, error)
}

func (m *mockTagSource) ExtractTags(ctx context.Context, title, description, specs string) (*models.ProductMetadata, error) {
	return m.extractTags(ctx, title, description, specs)
}

// mockSearchStore returns configured candidate sets.
type mockSearchStore struct {
	semanticCandidates func(ctx context.Context, embedding []float32, maxPrice *float64, limit int) ([]models.ScoredProduct, error)
	keywordCandidates  func(ctx context.Context, rawQuery, normalizedQuery string, maxPrice *float64, limit int) ([]models.Product, error)
}

func (m *mockSearchStore) SemanticCandidates(ctx context.Context, embedding []float32, maxPrice *float64, limit int) ([]models.ScoredProduct, error) {
	return m.semanticCandidates(ctx, embedding, maxPrice, limit)
}

func (m *mockSearchStore) KeywordCandidates(ctx context.Context, rawQuery, normalizedQuery string, maxPrice *float64, limit int) ([]models.Product, error) {
	return m.keywordCandidates(ctx, rawQuery, normalizedQuery, maxPrice, limit)
}

// mockEnricher records enriched product IDs for worker tests.
type mockEnricher struct {
	mu     sync.Mutex
	ids    []int64
	enrich func(ctx context.Context, productID int64) (*models.ProductMetadata, error)
}

func (m *mockEnricher) Enrich(ctx context.Context, productID int64) (*models.ProductMetadata, error) {
	m.mu.Lock()
	m.ids = append(m.ids, productID)
	m.mu.Unlock()

	if m.enrich != nil {
		return m.enrich(ctx, productID)
	}

	return models.EmptyMetadata(), nil
}

func (m *mockEnricher) seen() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]int64, len(m.ids))
	copy(out, m.ids)

	return out
}
