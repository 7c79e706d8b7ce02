package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matjarly/matjar/internal/models"
	"github.com/matjarly/matjar/internal/store"
)

func TestProductStore_GetProduct(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProductStore(base)
	ctx := context.Background()

	id := seedProduct(t, base, models.Product{
		Name:        "Coffee Grinder",
		Description: "burr grinder",
		Specs:       "220V",
		Image:       "https://cdn.example.com/grinder.jpg",
		Price:       120,
		IsActive:    true,
		Status:      models.StatusPublished,
		ClickCount:  7,
	})

	p, err := ps.GetProduct(ctx, id)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}

	if p.Name != "Coffee Grinder" || p.ClickCount != 7 {
		t.Errorf("unexpected product: %+v", p)
	}

	if p.HasEmbedding {
		t.Error("fresh product should not report an embedding")
	}

	if p.Metadata != nil {
		t.Errorf("fresh product should have nil metadata, got %+v", p.Metadata)
	}
}

func TestProductStore_GetProduct_NotFound(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProductStore(base)

	_, err := ps.GetProduct(context.Background(), -1)
	if !errors.Is(err, models.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductStore_UpdateEnrichment(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProductStore(base)
	ctx := context.Background()

	id := seedProduct(t, base, models.Product{
		Name: "Kettle", IsActive: true, Status: models.StatusPublished,
	})

	meta := &models.ProductMetadata{
		ExtractedTags:      []string{"kitchen"},
		Synonyms:           []string{"غلاية", "kettle"},
		CategorySuggestion: "appliances",
	}

	if err := ps.UpdateEnrichment(ctx, id, meta, testVector(3)); err != nil {
		t.Fatalf("UpdateEnrichment: %v", err)
	}

	p, err := ps.GetProduct(ctx, id)
	if err != nil {
		t.Fatalf("GetProduct after enrichment: %v", err)
	}

	if !p.HasEmbedding {
		t.Error("expected embedding present after enrichment")
	}

	if p.Metadata == nil || p.Metadata.CategorySuggestion != "appliances" {
		t.Errorf("metadata not stored: %+v", p.Metadata)
	}

	// A second run fully replaces the previous metadata.
	if err := ps.UpdateEnrichment(ctx, id, models.EmptyMetadata(), testVector(4)); err != nil {
		t.Fatalf("second UpdateEnrichment: %v", err)
	}

	p, err = ps.GetProduct(ctx, id)
	if err != nil {
		t.Fatalf("GetProduct after second enrichment: %v", err)
	}

	if p.Metadata == nil || len(p.Metadata.Synonyms) != 0 {
		t.Errorf("expected metadata replaced wholesale, got %+v", p.Metadata)
	}
}

func TestProductStore_UpdateEnrichment_NotFound(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProductStore(base)

	err := ps.UpdateEnrichment(context.Background(), -1, models.EmptyMetadata(), testVector(0))
	if !errors.Is(err, models.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductStore_ListPendingEmbeddings(t *testing.T) {
	base := setupTestBase(t)
	ps := store.NewProductStore(base)
	ctx := context.Background()

	pending := seedProduct(t, base, models.Product{
		Name: "Unenriched Fan", IsActive: true, Status: models.StatusPublished,
	})
	enriched := seedProduct(t, base, models.Product{
		Name: "Enriched Lamp", IsActive: true, Status: models.StatusPublished,
	})

	if err := ps.UpdateEnrichment(ctx, enriched, models.EmptyMetadata(), testVector(1)); err != nil {
		t.Fatalf("UpdateEnrichment: %v", err)
	}

	summaries, err := ps.ListPendingEmbeddings(ctx, 1000)
	if err != nil {
		t.Fatalf("ListPendingEmbeddings: %v", err)
	}

	var sawPending, sawEnriched bool
	for _, s := range summaries {
		if s.ID == pending {
			sawPending = true
		}
		if s.ID == enriched {
			sawEnriched = true
		}
	}

	if !sawPending {
		t.Error("pending product missing from backlog")
	}

	if sawEnriched {
		t.Error("enriched product should not appear in backlog")
	}
}
