package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/matjarly/matjar/internal/dbpool"
	"github.com/matjarly/matjar/internal/models"
	"github.com/matjarly/matjar/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestBase creates a Base backed by the shared test pool.
func setupTestBase(t *testing.T) store.Base {
	t.Helper()

	env := getTestEnv(t)

	return store.Base{Pool: env.pool, Log: env.log}
}

// seedProduct inserts a catalog row the way the catalog service would
// (no metadata, no embedding) and removes it when the test finishes.
func seedProduct(t *testing.T, base store.Base, p models.Product) int64 {
	t.Helper()

	ctx := context.Background()

	var id int64

	err := base.Pool.QueryRow(ctx,
		`INSERT INTO products (name, description, specs, image, price, is_active, status, click_count, conversion_rate)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.Name, p.Description, p.Specs, p.Image, p.Price, p.IsActive, p.Status, p.ClickCount, p.ConversionRate,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seeding product %q: %v", p.Name, err)
	}

	t.Cleanup(func() {
		if _, err := base.Pool.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id); err != nil {
			t.Errorf("cleaning up product %d: %v", id, err)
		}
	})

	return id
}

// testVector returns a 384-dim unit vector with a 1 in the given position.
func testVector(hot int) []float32 {
	v := make([]float32, 384)
	v[hot] = 1

	return v
}
