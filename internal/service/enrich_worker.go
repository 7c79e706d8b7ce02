package service

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/matjarly/matjar/internal/metrics"
	"github.com/matjarly/matjar/internal/models"
)

// Enricher runs the enrichment pipeline for one product.
type Enricher interface {
	Enrich(ctx context.Context, productID int64) (*models.ProductMetadata, error)
}

// EnrichWorker processes enrichment jobs asynchronously, giving the catalog
// service true fire-and-forget semantics: a catalog write never waits on the
// two upstream model calls. There is deliberately no retry: a failed run is
// logged and left for the next catalog write (or a backfill) to re-trigger.
type EnrichWorker struct {
	enricher    Enricher
	log         *logrus.Logger
	jobs        chan int64
	concurrency int
}

// NewEnrichWorker creates a worker with the given queue capacity and concurrency.
func NewEnrichWorker(enricher Enricher, log *logrus.Logger, queueSize, concurrency int) *EnrichWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	return &EnrichWorker{
		enricher:    enricher,
		log:         log,
		jobs:        make(chan int64, queueSize),
		concurrency: concurrency,
	}
}

// Enqueue adds an enrichment job. Non-blocking; drops the job if the queue is full.
func (w *EnrichWorker) Enqueue(productID int64) {
	select {
	case w.jobs <- productID:
		metrics.EnrichQueueDepth.Set(float64(len(w.jobs)))
	default:
		metrics.EnrichDropped.Inc()
		w.log.WithField("product_id", productID).Warn("enrichment queue full, dropping job")
	}
}

// Run spawns N worker goroutines and blocks until the context is cancelled
// and all workers have drained. Call in a goroutine.
func (w *EnrichWorker) Run(ctx context.Context) {
	var wg sync.WaitGroup

	w.log.WithField("concurrency", w.concurrency).Info("starting enrich workers")

	for i := range w.concurrency {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.runWorker(ctx, id)
		}(i)
	}

	wg.Wait()
	w.log.Info("all enrich workers stopped")
}

func (w *EnrichWorker) runWorker(ctx context.Context, id int) {
	w.log.WithField("worker_id", id).Debug("enrich worker started")
	for {
		select {
		case <-ctx.Done():
			return
		case productID := <-w.jobs:
			metrics.EnrichQueueDepth.Set(float64(len(w.jobs)))
			w.process(ctx, productID)
		}
	}
}

func (w *EnrichWorker) process(ctx context.Context, productID int64) {
	if ctx.Err() != nil {
		return
	}

	if _, err := w.enricher.Enrich(ctx, productID); err != nil {
		metrics.EnrichRuns.WithLabelValues("error").Inc()

		entry := w.log.WithError(err).WithField("product_id", productID)
		if errors.Is(err, models.ErrProductNotFound) {
			// The product was deleted between the trigger and the run.
			entry.Debug("enrichment target vanished")

			return
		}

		entry.Error("enrichment run failed")

		return
	}

	metrics.EnrichRuns.WithLabelValues("ok").Inc()
}
