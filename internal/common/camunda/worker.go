// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"matching-workers/internal/common/config"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
)

// HandlerFunc is the job callback signature expected by the Zeebe client.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// StartWorker opens a job worker for taskType. It returns nil when the worker is disabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler HandlerFunc, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(Instrument(taskType, handler))).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// Instrument records the in-flight count and handling duration of every job of taskType.
func Instrument(taskType string, handler HandlerFunc) HandlerFunc {
	active := metrics.WorkerJobsActive.WithLabelValues(taskType)
	duration := metrics.WorkerJobDuration.WithLabelValues(taskType)
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		active.Inc()
		defer func() {
			active.Dec()
			duration.Observe(time.Since(start).Seconds())
		}()
		handler(client, job)
	}
}
