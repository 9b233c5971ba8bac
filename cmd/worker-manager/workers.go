// cmd/worker-manager/workers.go
package main

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"

	"matching-workers/internal/availability"
	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/config"
	commonhttp "matching-workers/internal/common/http"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching"
	"matching-workers/internal/store"
	"matching-workers/pkg/registry"

	gsg "matching-workers/internal/workers/availability/generate-slot-grid"
	st "matching-workers/internal/workers/data-access/search-therapists"
	pgi "matching-workers/internal/workers/intent/parse-guest-intent"
	cms "matching-workers/internal/workers/matching/calculate-matching-score"
	rt "matching-workers/internal/workers/matching/rank-therapists"
)

// taskTypes is the start order of the job workers.
var taskTypes = []string{pgi.TaskType, st.TaskType, cms.TaskType, rt.TaskType, gsg.TaskType}

// dependencies are the shared clients handed to the job handlers.
type dependencies struct {
	es        *elasticsearch.Client
	profiles  store.ProfileStore
	windows   availability.WindowSource
	scorer    *matching.Scorer
	obs       *observability.Observability
	validator *validation.SchemaValidator
}

// loadRegistry returns the configured activity registry, or the embedded one.
func loadRegistry(cfg *config.Config) (*registry.ActivityRegistry, error) {
	if cfg.App.RegistryPath == "" {
		return registry.Default(), nil
	}
	reg, err := registry.LoadRegistry(cfg.App.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("load activity registry: %w", err)
	}
	if errs := reg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid activity registry %s: %w", cfg.App.RegistryPath, errors.Join(errs...))
	}
	return reg, nil
}

// newWindowSource picks the raw availability source of generate-slot-grid.
func newWindowSource(cfg *config.Config, db *sql.DB) (availability.WindowSource, error) {
	switch cfg.Availability.Source {
	case "", "http":
		client := commonhttp.NewClient(config.GetDuration(cfg.Backend.Timeout), cfg.Backend.BaseURLs...)
		return availability.NewHTTPSource(client), nil
	case "postgres":
		if db == nil {
			return nil, errors.New("postgres availability source needs a database")
		}
		return availability.NewPostgresSource(db), nil
	case "rules":
		return availability.LoadRuleSource(cfg.Availability.RulesPath)
	}
	return nil, fmt.Errorf("unknown availability source %q", cfg.Availability.Source)
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

// buildHandlers wires one job handler per task type.
func buildHandlers(cfg *config.Config, deps dependencies, log logger.Logger) map[string]camunda.HandlerFunc {
	handlers := make(map[string]camunda.HandlerFunc, len(taskTypes))

	handlers[pgi.TaskType] = pgi.NewHandler(
		&pgi.Config{Timeout: workerTimeout(cfg, pgi.TaskType)},
		deps.validator, log,
	).Handle

	handlers[st.TaskType] = st.NewHandler(
		&st.Config{
			Index:       cfg.Database.Elasticsearch.Index,
			DefaultSize: cfg.Matching.SearchSize,
			Timeout:     workerTimeout(cfg, st.TaskType),
		},
		deps.es, deps.validator, log,
	).Handle

	handlers[cms.TaskType] = cms.NewHandler(
		&cms.Config{Timeout: workerTimeout(cfg, cms.TaskType)},
		deps.profiles, deps.scorer, deps.obs, deps.validator, log,
	).Handle

	handlers[rt.TaskType] = rt.NewHandler(
		&rt.Config{
			MaxRanked: cfg.Matching.MaxRanked,
			Timeout:   workerTimeout(cfg, rt.TaskType),
		},
		deps.scorer, deps.obs, deps.validator, log,
	).Handle

	week := availability.NewWeekAssembler(deps.windows, log.WithFields(map[string]interface{}{"component": "week-assembler"}))
	handlers[gsg.TaskType] = gsg.NewHandler(
		&gsg.Config{Timeout: workerTimeout(cfg, gsg.TaskType)},
		week, deps.validator, log,
	).Handle

	return handlers
}

// startWorkers opens a job worker for every enabled task type.
func startWorkers(client zbc.Client, cfg *config.Config, handlers map[string]camunda.HandlerFunc, log logger.Logger) []worker.JobWorker {
	var workers []worker.JobWorker
	for _, taskType := range taskTypes {
		handler, ok := handlers[taskType]
		if !ok {
			continue
		}
		if w := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handler, log); w != nil {
			workers = append(workers, w)
		}
	}
	return workers
}
