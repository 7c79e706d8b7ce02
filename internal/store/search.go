package store

import (
	"context"
	"fmt"

	"github.com/matjarly/matjar/internal/models"
)

// SearchStore serves the two candidate queries the hybrid query planner
// fuses. Both queries filter identically on visibility and price; all
// user-derived values travel as bind parameters, never interpolated SQL.
type SearchStore struct {
	Base
}

// NewSearchStore creates a new SearchStore.
func NewSearchStore(base Base) *SearchStore {
	return &SearchStore{Base: base}
}

// SemanticCandidates returns the active, published products with a non-null
// embedding closest to the query vector by cosine distance, annotated with
// similarity = 1 − distance.
func (s *SearchStore) SemanticCandidates(
	ctx context.Context,
	embedding []float32,
	maxPrice *float64,
	limit int,
) ([]models.ScoredProduct, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit, 100)

	sql := `SELECT ` + productColumns + `, 1 - (embedding <=> $1::vector) AS similarity
		FROM products
		WHERE is_active
			AND status = $2
			AND embedding IS NOT NULL
			AND ($3::float8 IS NULL OR price <= $3::float8)
		ORDER BY embedding <=> $1::vector
		LIMIT $4`

	rows, err := s.Pool.Query(ctx, sql, formatEmbedding(embedding), models.StatusPublished, maxPrice, limit)
	if err != nil {
		return nil, fmt.Errorf("executing semantic candidate query: %w", err)
	}
	defer rows.Close()

	scored := make([]models.ScoredProduct, 0, limit)

	for rows.Next() {
		var score float64
		p, err := scanProduct(func(dest ...any) error {
			return rows.Scan(append(dest, &score)...) //nolint:gocritic // append to extend scan targets
		})
		if err != nil {
			return nil, fmt.Errorf("scanning semantic candidate: %w", err)
		}

		scored = append(scored, models.ScoredProduct{Product: *p, Score: score})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating semantic candidates: %w", err)
	}

	return scored, nil
}

// KeywordCandidates returns active, published products whose name,
// description, or metadata text contains the raw or the normalized query as
// a case-insensitive substring. Scoring happens in the query planner, which
// normalizes both sides with the same table; this query only bounds the
// candidate pool.
func (s *SearchStore) KeywordCandidates(
	ctx context.Context,
	rawQuery string,
	normalizedQuery string,
	maxPrice *float64,
	limit int,
) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	limit = clampLimit(limit, 100)

	rawPattern := likePattern(rawQuery)
	normPattern := likePattern(normalizedQuery)

	sql := `SELECT ` + productColumns + `
		FROM products
		WHERE is_active
			AND status = $1
			AND ($2::float8 IS NULL OR price <= $2::float8)
			AND (name ILIKE $3 OR description ILIKE $3 OR ai_metadata::text ILIKE $3
				OR name ILIKE $4 OR description ILIKE $4 OR ai_metadata::text ILIKE $4)
		ORDER BY click_count DESC, id
		LIMIT $5`

	rows, err := s.Pool.Query(ctx, sql, models.StatusPublished, maxPrice, rawPattern, normPattern, limit)
	if err != nil {
		return nil, fmt.Errorf("executing keyword candidate query: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	return products, nil
}
