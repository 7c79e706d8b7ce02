package store

import (
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matjarly/matjar/internal/models"
)

// productColumns lists the columns selected for product queries. The raw
// embedding is never read back; only its presence matters to callers.
const productColumns = `id, name, description, specs, image, price,
	is_active, status, click_count, conversion_rate, ai_metadata,
	embedding IS NOT NULL AS has_embedding, created_at, updated_at`

// scanProduct scans a single row into a models.Product.
func scanProduct(scan func(dest ...any) error) (*models.Product, error) {
	var p models.Product
	var metadata []byte

	err := scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Specs,
		&p.Image,
		&p.Price,
		&p.IsActive,
		&p.Status,
		&p.ClickCount,
		&p.ConversionRate,
		&metadata,
		&p.HasEmbedding,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		var m models.ProductMetadata
		if err := json.Unmarshal(metadata, &m); err != nil {
			return nil, fmt.Errorf("decoding ai_metadata for product %d: %w", p.ID, err)
		}

		p.Metadata = &m
	}

	return &p, nil
}

// collectProducts scans all rows into products.
func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	var products []models.Product

	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
