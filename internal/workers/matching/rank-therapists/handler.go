// internal/workers/matching/rank-therapists/handler.go
package ranktherapists

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching"
	"matching-workers/internal/models"
)

const (
	TaskType = "rank-therapists"
)

type Handler struct {
	config    *Config
	scorer    *matching.Scorer
	obs       *observability.Observability
	validator *validation.SchemaValidator
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, scorer *matching.Scorer, obs *observability.Observability, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	if scorer == nil {
		scorer = matching.Default()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		scorer:    scorer,
		obs:       obs,
		validator: validator,
		errors:    apperrors.NewErrorHandler(l),
		logger:    l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, apperrors.NewParseError(err)
	}

	result, err := h.validator.Validate(TaskType, variables)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, apperrors.NewInputValidationError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, apperrors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInputValidationError("input cannot be nil")
	}

	core := matching.FallbackCoreScorer{
		Scores:   input.CoreScores,
		Fallback: matching.PerformanceCoreScorer{},
	}
	ranked := h.scorer.RankMatchingCandidates(preferenceFor(input), input.Candidates, core)
	metrics.RankedCandidates.Observe(float64(len(ranked)))

	if limit := h.limit(input); limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if len(ranked) > 0 {
		h.obs.RecordScore(ctx, ranked[0].RecommendedScore)
	}

	output := &Output{
		RankingID:        uuid.New().String(),
		RankedCandidates: ranked,
		TotalCandidates:  len(input.Candidates),
	}
	h.logger.Debug("candidates ranked", map[string]interface{}{
		"rankingId": output.RankingID,
		"total":     output.TotalCandidates,
		"returned":  len(ranked),
	})
	return output, nil
}

func preferenceFor(input *Input) models.GuestPreference {
	switch {
	case input.GuestPreference != nil:
		return *input.GuestPreference
	case input.GuestIntent != nil:
		return matching.BuildPreference(*input.GuestIntent)
	}
	return models.GuestPreference{}
}

func (h *Handler) limit(input *Input) int {
	if input.MaxItems > 0 {
		return input.MaxItems
	}
	return h.config.MaxRanked
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := apperrors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.errors.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
