package client

import "time"

// Product is a catalog product as returned by the API.
type Product struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Specs          string           `json:"specs"`
	Image          string           `json:"image"`
	Price          float64          `json:"price"`
	IsActive       bool             `json:"is_active"`
	Status         string           `json:"status"`
	ClickCount     int64            `json:"click_count"`
	ConversionRate float64          `json:"conversion_rate"`
	Metadata       *ProductMetadata `json:"ai_metadata,omitempty"`
	HasEmbedding   bool             `json:"has_embedding"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ProductMetadata is the derived enrichment payload.
type ProductMetadata struct {
	ExtractedTags      []string `json:"extracted_tags"`
	Synonyms           []string `json:"synonyms"`
	CategorySuggestion string   `json:"category_suggestion"`
}

// RankedProduct is a search hit annotated with its ranking signals.
type RankedProduct struct {
	Product
	SemanticScore   float64 `json:"semantic_score"`
	KeywordScore    float64 `json:"keyword_score"`
	PopularityScore float64 `json:"popularity_score"`
	FinalRank       float64 `json:"final_rank"`
}

// SearchOptions are the optional parameters for Search.
type SearchOptions struct {
	Limit    int
	Offset   int
	MaxPrice float64
}

// EnrichResult is the response of a synchronous enrichment call.
type EnrichResult struct {
	ProductID int64            `json:"product_id"`
	Metadata  *ProductMetadata `json:"metadata"`
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status              string  `json:"status"`
	Version             string  `json:"version"`
	Database            string  `json:"database"`
	Embeddings          string  `json:"embeddings"`
	EmbeddingDimensions int     `json:"embedding_dimensions"`
	UptimeSeconds       float64 `json:"uptime_seconds"`
}

// ReadinessResponse is the readiness check payload.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
