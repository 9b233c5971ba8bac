// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/config"
	"matching-workers/internal/common/database"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching"
	"matching-workers/internal/store"
)

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	if err := run(cfg, log); err != nil {
		zapLog.Fatal("worker manager failed", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped gracefully")
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting worker manager", map[string]interface{}{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs, err := observability.New(cfg.App.Name, cfg.Tracing.JaegerEndpoint)
	if err != nil {
		log.Warn("observability partially initialized", map[string]interface{}{"error": err})
	}
	defer obs.Shutdown()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	})
	if err != nil {
		return fmt.Errorf("zeebe: %w", err)
	}
	defer zeebe.Close()
	log.Info("Zeebe client connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := database.WaitFor(ctx, "postgres", pg, connectAttempts, connectDelay); err != nil {
		return err
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("postgres schema: %w", err)
	}
	log.Info("PostgreSQL connected", nil)

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	if err := database.WaitFor(ctx, "redis", rdb, connectAttempts, connectDelay); err != nil {
		return err
	}
	log.Info("Redis connected", nil)

	// --- Elasticsearch ---
	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return err
	}
	if err := database.WaitFor(ctx, "elasticsearch", es, connectAttempts, connectDelay); err != nil {
		return err
	}
	if ok, err := es.IndexExists(ctx, cfg.Database.Elasticsearch.Index); err != nil || !ok {
		log.Warn("candidate index not available, search-therapists will fail until it exists", map[string]interface{}{
			"index": cfg.Database.Elasticsearch.Index,
			"error": err,
		})
	}
	log.Info("Elasticsearch connected", map[string]interface{}{"index": cfg.Database.Elasticsearch.Index})

	// --- Registry, sources, handlers ---
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	validator, err := validation.NewSchemaValidator(reg)
	if err != nil {
		return err
	}
	windows, err := newWindowSource(cfg, pg.DB)
	if err != nil {
		return err
	}
	log.Info("Availability source selected", map[string]interface{}{"source": cfg.Availability.Source})

	profiles := store.NewCachedProfiles(
		store.NewPostgresProfiles(pg.DB),
		rdb.Client,
		time.Duration(cfg.Matching.ProfileCacheTTL)*time.Second,
		log.WithFields(map[string]interface{}{"component": "profile-cache"}),
	)

	handlers := buildHandlers(cfg, dependencies{
		es:        es.Client,
		profiles:  profiles,
		windows:   windows,
		scorer:    matching.Default(),
		obs:       obs,
		validator: validator,
	}, log)
	workers := startWorkers(zeebe.GetClient(), cfg, handlers, log)
	log.Info("All workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: newHandler([]readinessCheck{
			{name: "zeebe", ping: zeebe.HealthCheck},
			{name: "postgres", ping: pg.Ping},
			{name: "redis", ping: rdb.Ping},
			{name: "elasticsearch", ping: es.Ping},
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received, stopping workers", nil)
	case err := <-serverErr:
		log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping Health/Metrics server", map[string]interface{}{"error": err})
	}
	return nil
}
