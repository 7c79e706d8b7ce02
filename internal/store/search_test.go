package store_test

import (
	"context"
	"testing"

	"github.com/matjarly/matjar/internal/models"
	"github.com/matjarly/matjar/internal/store"
)

func ptr[T any](v T) *T { return &v }

func TestSearchStore_SemanticCandidates(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProductStore(base)
	ss := store.NewSearchStore(base)
	ctx := context.Background()

	near := seedProduct(t, base, models.Product{
		Name: "Wireless Headphones", Price: 80, IsActive: true, Status: models.StatusPublished,
	})
	far := seedProduct(t, base, models.Product{
		Name: "Garden Hose", Price: 15, IsActive: true, Status: models.StatusPublished,
	})
	// Never enriched: must be invisible to the semantic branch.
	seedProduct(t, base, models.Product{
		Name: "Unenriched Speaker", Price: 40, IsActive: true, Status: models.StatusPublished,
	})

	if err := ps.UpdateEnrichment(ctx, near, models.EmptyMetadata(), testVector(0)); err != nil {
		t.Fatalf("enriching near product: %v", err)
	}
	if err := ps.UpdateEnrichment(ctx, far, models.EmptyMetadata(), testVector(7)); err != nil {
		t.Fatalf("enriching far product: %v", err)
	}

	results, err := ss.SemanticCandidates(ctx, testVector(0), nil, 100)
	if err != nil {
		t.Fatalf("SemanticCandidates: %v", err)
	}

	if len(results) < 2 {
		t.Fatalf("expected at least 2 candidates, got %d", len(results))
	}

	if results[0].ID != near {
		t.Errorf("expected product %d first, got %d", near, results[0].ID)
	}

	// Identical vector: cosine distance 0, similarity 1.
	if results[0].Score < 0.99 {
		t.Errorf("expected similarity ~1 for identical vector, got %f", results[0].Score)
	}

	for _, r := range results {
		if r.Name == "Unenriched Speaker" {
			t.Error("product without embedding leaked into semantic candidates")
		}
	}
}

func TestSearchStore_SemanticCandidates_PriceFilter(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProductStore(base)
	ss := store.NewSearchStore(base)
	ctx := context.Background()

	cheap := seedProduct(t, base, models.Product{
		Name: "Budget Earbuds", Price: 20, IsActive: true, Status: models.StatusPublished,
	})
	expensive := seedProduct(t, base, models.Product{
		Name: "Studio Monitors", Price: 900, IsActive: true, Status: models.StatusPublished,
	})

	for _, id := range []int64{cheap, expensive} {
		if err := ps.UpdateEnrichment(ctx, id, models.EmptyMetadata(), testVector(2)); err != nil {
			t.Fatalf("enriching %d: %v", id, err)
		}
	}

	results, err := ss.SemanticCandidates(ctx, testVector(2), ptr(100.0), 100)
	if err != nil {
		t.Fatalf("SemanticCandidates: %v", err)
	}

	for _, r := range results {
		if r.Price > 100 {
			t.Errorf("price filter violated: product %d priced %f", r.ID, r.Price)
		}
	}
}

func TestSearchStore_KeywordCandidates(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProductStore(base)
	ss := store.NewSearchStore(base)
	ctx := context.Background()

	fridge := seedProduct(t, base, models.Product{
		Name: "ثلاجة كهربائية", IsActive: true, Status: models.StatusPublished,
	})
	inactive := seedProduct(t, base, models.Product{
		Name: "ثلاجة قديمة", IsActive: false, Status: models.StatusPublished,
	})
	draft := seedProduct(t, base, models.Product{
		Name: "ثلاجة مسودة", IsActive: true, Status: "DRAFT",
	})

	// Metadata carries the colloquial synonym in normalized form.
	err := ps.UpdateEnrichment(ctx, fridge, &models.ProductMetadata{
		ExtractedTags:      []string{"اجهزه منزليه"},
		Synonyms:           []string{"براده", "fridge", "refrigerator"},
		CategorySuggestion: "اجهزه كهربائيه",
	}, testVector(5))
	if err != nil {
		t.Fatalf("enriching fridge: %v", err)
	}

	// Name match via raw query.
	results, err := ss.KeywordCandidates(ctx, "ثلاجة", "ثلاجه", nil, 100)
	if err != nil {
		t.Fatalf("KeywordCandidates: %v", err)
	}

	ids := make(map[int64]bool, len(results))
	for _, r := range results {
		ids[r.ID] = true
	}

	if !ids[fridge] {
		t.Error("expected fridge in keyword candidates")
	}

	if ids[inactive] || ids[draft] {
		t.Error("inactive or draft product leaked into keyword candidates")
	}

	// Colloquial query matches only through normalized metadata text.
	results, err = ss.KeywordCandidates(ctx, "برادة", "براده", nil, 100)
	if err != nil {
		t.Fatalf("KeywordCandidates (dialect): %v", err)
	}

	found := false
	for _, r := range results {
		if r.ID == fridge {
			found = true
		}
	}

	if !found {
		t.Error("normalized dialect synonym did not surface the product")
	}
}

func TestSearchStore_KeywordCandidates_WildcardsLiteral(t *testing.T) {
	base := setupTestBase(t)
	ss := store.NewSearchStore(base)
	ctx := context.Background()

	seedProduct(t, base, models.Product{
		Name: "Discount Mixer", IsActive: true, Status: models.StatusPublished,
	})

	// "%" in user input must not act as a match-everything wildcard.
	results, err := ss.KeywordCandidates(ctx, "%", "%", nil, 100)
	if err != nil {
		t.Fatalf("KeywordCandidates: %v", err)
	}

	for _, r := range results {
		if r.Name == "Discount Mixer" {
			t.Error("LIKE wildcard in user input was not escaped")
		}
	}
}
