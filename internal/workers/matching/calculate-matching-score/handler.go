// internal/workers/matching/calculate-matching-score/handler.go
package calculatematchingscore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching"
	"matching-workers/internal/models"
	"matching-workers/internal/store"
)

const (
	TaskType = "calculate-matching-score"
)

type Handler struct {
	config    *Config
	profiles  store.ProfileStore
	scorer    *matching.Scorer
	core      matching.CoreScorer
	obs       *observability.Observability
	validator *validation.SchemaValidator
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(
	config *Config,
	profiles store.ProfileStore,
	scorer *matching.Scorer,
	obs *observability.Observability,
	validator *validation.SchemaValidator,
	log logger.Logger,
) *Handler {
	if scorer == nil {
		scorer = matching.Default()
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		profiles:  profiles,
		scorer:    scorer,
		core:      matching.PerformanceCoreScorer{},
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

	profile, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	core := h.core.CoreScore(*profile)
	if input.CoreScore != nil {
		core = *input.CoreScore
	}
	availability := profile.AvailabilityScore
	if input.AvailabilityScore != nil {
		availability = *input.AvailabilityScore
	}

	result := h.scorer.ComputeMatchingScore(input.GuestPreference, *profile, core, availability)
	h.obs.RecordScore(ctx, result.Score)

	h.logger.Debug("matching score calculated", map[string]interface{}{
		"therapistId": result.TherapistID,
		"score":       result.Score,
	})
	return &result, nil
}

func (h *Handler) resolveProfile(ctx context.Context, input *Input) (*models.TherapistProfile, error) {
	if input.Therapist != nil {
		return input.Therapist, nil
	}
	if input.TherapistID == "" {
		return nil, apperrors.NewInputValidationError("therapist or therapistId is required")
	}
	if h.profiles == nil {
		return nil, apperrors.NewProfileLookupFailedError(input.TherapistID, errors.New("no profile store configured"))
	}

	profile, err := h.profiles.GetProfile(ctx, input.TherapistID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewTherapistNotFoundError(input.TherapistID)
	}
	if err != nil {
		return nil, apperrors.NewProfileLookupFailedError(input.TherapistID, err)
	}
	return profile, nil
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
