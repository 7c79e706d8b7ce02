package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/matjarly/matjar/internal/models"
)

// EnrichmentStore defines the data access methods EnrichmentService depends on.
type EnrichmentStore interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	UpdateEnrichment(ctx context.Context, id int64, metadata *models.ProductMetadata, embedding []float32) error
}

// Embedder generates vector embeddings from text.
type Embedder interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// TagSource derives structured metadata from product text.
type TagSource interface {
	ExtractTags(ctx context.Context, title, description, specs string) (*models.ProductMetadata, error)
}

// EnrichmentService derives tags and an embedding for one product and
// persists both in a single write. Safe to re-run for the same product at
// any time: each run fully overwrites the previous derived fields.
type EnrichmentService struct {
	store    EnrichmentStore
	embedder Embedder
	tags     TagSource
	log      *logrus.Logger
}

// NewEnrichmentService creates an EnrichmentService.
func NewEnrichmentService(store EnrichmentStore, embedder Embedder, tags TagSource, log *logrus.Logger) *EnrichmentService {
	return &EnrichmentService{store: store, embedder: embedder, tags: tags, log: log}
}

// Enrich runs the full pipeline for one product. A missing product returns
// models.ErrProductNotFound with no writes. A tag extraction failure
// downgrades to empty metadata and the run continues. An embedding failure
// aborts the run before anything is written, so the product keeps whatever
// derived state it had.
func (s *EnrichmentService) Enrich(ctx context.Context, productID int64) (*models.ProductMetadata, error) {
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	metadata, err := s.tags.ExtractTags(ctx, product.Name, product.Description, product.Specs)
	if err != nil {
		s.log.WithError(err).WithField("product_id", productID).
			Warn("tag extraction failed, continuing with empty metadata")

		metadata = models.EmptyMetadata()
	}

	embedding, err := s.embedder.Generate(ctx, product.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("embedding product %d: %w", productID, err)
	}

	if err := s.store.UpdateEnrichment(ctx, productID, metadata, embedding); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"tags":       len(metadata.ExtractedTags),
		"synonyms":   len(metadata.Synonyms),
	}).Info("product enriched")

	return metadata, nil
}
