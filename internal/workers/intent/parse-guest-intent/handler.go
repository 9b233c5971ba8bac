// internal/workers/intent/parse-guest-intent/handler.go
package parseguestintent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/matching"
)

const (
	TaskType = "parse-guest-intent"
)

type Handler struct {
	config    *Config
	validator *validation.SchemaValidator
	errors    *apperrors.ErrorHandler
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.SchemaValidator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
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

	values, err := queryValues(input)
	if err != nil {
		return nil, apperrors.NewInvalidGuestIntentError(err.Error())
	}

	intent, err := matching.ParseGuestIntent(values)
	if err != nil {
		var intentErr *matching.IntentError
		if errors.As(err, &intentErr) {
			return nil, apperrors.NewInvalidGuestIntentError(intentErr.Error())
		}
		return nil, apperrors.NewInternalError(err)
	}

	h.logger.Debug("guest intent parsed", map[string]interface{}{
		"area":     intent.Area,
		"date":     intent.Date,
		"moodTags": intent.MoodTags,
	})

	return &Output{
		GuestIntent:     intent,
		GuestPreference: matching.BuildPreference(intent),
	}, nil
}

// queryValues merges the raw query string with the decoded map. Map entries
// are appended after the raw ones so repeated tags from both sides survive.
func queryValues(input *Input) (url.Values, error) {
	values := url.Values{}
	if raw := strings.TrimPrefix(strings.TrimSpace(input.RawQuery), "?"); raw != "" {
		parsed, err := url.ParseQuery(raw)
		if err != nil {
			return nil, fmt.Errorf("rawQuery: %w", err)
		}
		values = parsed
	}

	for key, v := range input.Query {
		switch val := v.(type) {
		case nil:
		case string:
			values.Add(key, val)
		case float64:
			values.Add(key, formatNumber(val))
		case bool:
			values.Add(key, fmt.Sprintf("%t", val))
		case []interface{}:
			for _, item := range val {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("query.%s: list items must be strings", key)
				}
				values.Add(key, s)
			}
		default:
			return nil, fmt.Errorf("query.%s: unsupported value type %T", key, v)
		}
	}
	return values, nil
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
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
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := apperrors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errors.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
