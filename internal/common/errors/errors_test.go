package errors

import (
	"fmt"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"profile lookup retries", NewProfileLookupFailedError("t-1", fmt.Errorf("conn reset")), "PROFILE_LOOKUP_FAILED", 3},
		{"search timeout retries twice", NewSearchTimeoutError("therapists"), "SEARCH_TIMEOUT", 2},
		{"not found is terminal", NewTherapistNotFoundError("t-1"), "THERAPIST_NOT_FOUND", 0},
		{"validation is terminal", NewInputValidationError("guestPreference is required"), "INPUT_VALIDATION_FAILED", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, string(tt.err.Code), vars["originalErrorCode"])
		})
	}
}

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("execute: %w", NewCandidateSearchFailedError(fmt.Errorf("503")))
	got := AsStandardError(wrapped)
	assert.Equal(t, ErrCodeCandidateSearchFailed, got.Code)

	plain := AsStandardError(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeInternalError, plain.Code)
	assert.False(t, plain.Retryable)
	assert.Equal(t, "boom", plain.Details)
}

func TestRetriesFor(t *testing.T) {
	job := func(retries int32) entities.Job {
		return entities.Job{ActivatedJob: &pb.ActivatedJob{Retries: retries}}
	}
	assert.Equal(t, int32(2), retriesFor(job(3), 3))
	assert.Equal(t, int32(3), retriesFor(job(10), 3))
	assert.Equal(t, int32(0), retriesFor(job(0), 3))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchTimeout))
	assert.Equal(t, "PROFILE", GetErrorCategory(ErrCodeTherapistNotFound))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidGuestIntent))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternalError))
	require.True(t, IsRetryableErrorCode(ErrCodeCandidateSearchFailed))
}
