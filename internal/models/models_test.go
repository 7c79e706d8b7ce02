package models_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matjarly/matjar/internal/models"
)

func TestProduct_EmbeddingText(t *testing.T) {
	p := models.Product{
		Name:        "Stainless Kettle",
		Description: "1.7L electric kettle",
		Specs:       "220V, 2000W",
		Image:       "https://cdn.example.com/kettle.jpg",
	}

	got := p.EmbeddingText()
	want := "Title: Stainless Kettle\n" +
		"Description: 1.7L electric kettle\n" +
		"Specs: 220V, 2000W\n" +
		"Main Image URL: https://cdn.example.com/kettle.jpg"

	if got != want {
		t.Errorf("EmbeddingText() = %q, want %q", got, want)
	}
}

func TestProduct_EmbeddingText_EmptyFields(t *testing.T) {
	p := models.Product{Name: "Kettle"}

	got := p.EmbeddingText()
	if !strings.HasPrefix(got, "Title: Kettle\n") {
		t.Errorf("EmbeddingText() = %q, want Title line first", got)
	}

	// Labels are emitted even when the underlying field is empty, so the
	// blob shape never varies per product.
	for _, label := range []string{"Description:", "Specs:", "Main Image URL:"} {
		if !strings.Contains(got, label) {
			t.Errorf("EmbeddingText() missing label %q in %q", label, got)
		}
	}
}

func TestProduct_Searchable(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		want    bool
	}{
		{name: "active published", product: models.Product{IsActive: true, Status: models.StatusPublished}, want: true},
		{name: "inactive", product: models.Product{IsActive: false, Status: models.StatusPublished}, want: false},
		{name: "draft", product: models.Product{IsActive: true, Status: "DRAFT"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.product.Searchable(); got != tc.want {
				t.Errorf("Searchable() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEmptyMetadata_SerializesAllKeys(t *testing.T) {
	data, err := json.Marshal(models.EmptyMetadata())
	if err != nil {
		t.Fatalf("marshaling empty metadata: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshaling: %v", err)
	}

	for _, key := range []string{"extracted_tags", "synonyms", "category_suggestion"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("key %q missing from %s", key, data)
		}
	}

	if tags, ok := decoded["extracted_tags"].([]any); !ok || tags == nil {
		t.Errorf("extracted_tags = %v, want empty array (not null)", decoded["extracted_tags"])
	}
}

func TestProductMetadata_Text(t *testing.T) {
	tests := []struct {
		name string
		meta *models.ProductMetadata
		want string
	}{
		{name: "nil", meta: nil, want: ""},
		{
			name: "full",
			meta: &models.ProductMetadata{
				ExtractedTags:      []string{"kitchen", "electric"},
				Synonyms:           []string{"kettle", "غلاية"},
				CategorySuggestion: "appliances",
			},
			want: "kitchen electric kettle غلاية appliances",
		},
		{
			name: "no category",
			meta: &models.ProductMetadata{ExtractedTags: []string{"a"}, Synonyms: []string{"b"}},
			want: "a b",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.meta.Text(); got != tc.want {
				t.Errorf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}
