package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matjarly/matjar/internal/models"
)

// ProductStore handles product row reads and enrichment writes.
type ProductStore struct {
	Base
}

// NewProductStore creates a new ProductStore.
func NewProductStore(base Base) *ProductStore {
	return &ProductStore{Base: base}
}

// GetProduct loads one product by id.
func (s *ProductStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}

		return nil, fmt.Errorf("loading product %d: %w", id, err)
	}

	return p, nil
}

// UpdateEnrichment replaces the two derived fields of a product row in a
// single statement. Both fields are whole-value replacements; the rest of
// the row is owned by the catalog service and never touched here.
func (s *ProductStore) UpdateEnrichment(ctx context.Context, id int64, metadata *models.ProductMetadata, embedding []float32) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encoding ai_metadata: %w", err)
	}

	tag, err := s.Pool.Exec(ctx,
		`UPDATE products
		 SET ai_metadata = $1, embedding = $2::vector, updated_at = now()
		 WHERE id = $3`,
		metadataJSON, formatEmbedding(embedding), id,
	)
	if err != nil {
		return fmt.Errorf("writing enrichment for product %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}

	return nil
}

// ListPendingEmbeddings returns products that have never been enriched
// (NULL embedding), oldest first, up to the given limit. Used by the
// backfill admin endpoint.
func (s *ProductStore) ListPendingEmbeddings(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit, 100)

	rows, err := s.Pool.Query(ctx,
		`SELECT id, name FROM products
		 WHERE embedding IS NULL AND is_active
		 ORDER BY created_at
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying products without embeddings: %w", err)
	}

	defer rows.Close()

	var summaries []models.ProductSummary

	for rows.Next() {
		var ps models.ProductSummary
		if err := rows.Scan(&ps.ID, &ps.Name); err != nil {
			return nil, fmt.Errorf("scanning product summary: %w", err)
		}

		summaries = append(summaries, ps)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product summaries: %w", err)
	}

	return summaries, nil
}

// CountPendingEmbeddings returns how many active products still lack an
// embedding. Exported for the readiness endpoint and the backfill gauge.
func (s *ProductStore) CountPendingEmbeddings(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64

	err := s.Pool.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE embedding IS NULL AND is_active`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting products without embeddings: %w", err)
	}

	return count, nil
}
