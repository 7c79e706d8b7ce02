// Command matjar runs the catalog enrichment and search server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matjarly/matjar/internal/api"
	"github.com/matjarly/matjar/internal/config"
	"github.com/matjarly/matjar/internal/db"
	"github.com/matjarly/matjar/internal/db/migrations"
	"github.com/matjarly/matjar/internal/dbpool"
	"github.com/matjarly/matjar/internal/service"
	"github.com/matjarly/matjar/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	if err := db.EnsureVectorDimensions(ctx, pool, log, cfg.EmbeddingDimensions); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	products := store.NewProductStore(base)
	search := store.NewSearchStore(base)

	embedder := service.NewEmbeddingService(cfg.OllamaURL, cfg.EmbeddingModel, cfg.EmbeddingDimensions)

	tags, err := service.NewTagExtractor(cfg.LLMURL, cfg.LLMModel, cfg.LLMKey.Value(), log)
	if err != nil {
		return err
	}

	enricher := service.NewEnrichmentService(products, embedder, tags, log)
	searcher := service.NewSearchService(search, embedder, cfg.KeywordFallback, log)

	worker := service.NewEnrichWorker(enricher, log, cfg.EnrichQueueSize, cfg.EnrichWorkers)

	workerDone := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(workerDone)
	}()

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:                 log,
		Pool:                pool,
		Catalog:             products,
		Search:              searcher,
		Enricher:            enricher,
		EnrichQueue:         worker,
		CORSOrigins:         cfg.CORSOrigins,
		Version:             config.Version,
		OllamaURL:           cfg.OllamaURL,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimensions,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr()).Info("server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("forced shutdown")
	}

	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("enrich workers did not drain in time")
	}

	log.Info("server stopped")

	return nil
}
