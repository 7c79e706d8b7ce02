// Package models defines data types for the catalog enrichment and search core.
package models

import (
	"strings"
	"time"
)

// StatusPublished is the product status visible to search.
const StatusPublished = "PUBLISHED"

// Product is the catalog row as seen by this subsystem. The catalog service
// owns every field except Metadata and the embedding column; enrichment
// replaces those two wholesale and never touches the rest.
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

// EmbeddingText builds the content blob sent to the embedding service.
// Field order and labels are fixed; enrichment and backfill must produce
// the same blob for the same product.
func (p *Product) EmbeddingText() string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(p.Name)
	b.WriteString("\nDescription: ")
	b.WriteString(p.Description)
	b.WriteString("\nSpecs: ")
	b.WriteString(p.Specs)
	b.WriteString("\nMain Image URL: ")
	b.WriteString(p.Image)

	return b.String()
}

// Searchable reports whether the product may appear in any search result.
func (p *Product) Searchable() bool {
	return p.IsActive && p.Status == StatusPublished
}

// ProductMetadata is the derived tag object stored in the ai_metadata jsonb
// column. All three keys are always present after a successful write; a
// failed tag extraction stores the zero value.
type ProductMetadata struct {
	ExtractedTags      []string `json:"extracted_tags"`
	Synonyms           []string `json:"synonyms"`
	CategorySuggestion string   `json:"category_suggestion"`
}

// EmptyMetadata returns the safe fallback written when tag extraction fails.
// Slices are non-nil so the JSON keys serialize as [] rather than null.
func EmptyMetadata() *ProductMetadata {
	return &ProductMetadata{
		ExtractedTags: []string{},
		Synonyms:      []string{},
	}
}

// Text flattens the metadata into one lowercase-agnostic string for lexical
// matching. Tag order follows field order so scoring is deterministic.
func (m *ProductMetadata) Text() string {
	if m == nil {
		return ""
	}

	parts := make([]string, 0, len(m.ExtractedTags)+len(m.Synonyms)+1)
	parts = append(parts, m.ExtractedTags...)
	parts = append(parts, m.Synonyms...)

	if m.CategorySuggestion != "" {
		parts = append(parts, m.CategorySuggestion)
	}

	return strings.Join(parts, " ")
}

// ProductSummary is a lightweight projection for backfill listings.
type ProductSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ScoredProduct pairs a Product with its similarity score from the semantic
// candidate query (1 − cosine distance).
type ScoredProduct struct {
	Product
	Score float64 `json:"score"`
}

// RankedProduct is a search hit annotated with its ranking signals.
type RankedProduct struct {
	Product
	SemanticScore   float64 `json:"semantic_score"`
	KeywordScore    float64 `json:"keyword_score"`
	PopularityScore float64 `json:"popularity_score"`
	FinalRank       float64 `json:"final_rank"`
}

// SearchRequest carries one search call's parameters.
type SearchRequest struct {
	Query    string
	Limit    int
	Offset   int
	MaxPrice *float64
}
