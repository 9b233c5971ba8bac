package parseguestintent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/models"
	"matching-workers/pkg/registry"
)

// ==========================
// Test Helpers
// ==========================

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	v, err := validation.NewSchemaValidator(registry.Default())
	require.NoError(t, err)
	return NewHandler(LoadConfig(), v, logger.NewTestLogger(t))
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "guest-matching",
		ElementId:          "Activity_ParseGuestIntent",
		CustomHeaders:      "{}",
		Retries:            1,
		Variables:          string(variablesJSON),
	}}
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.AsStandardError(err).Code)
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute_RawQuery(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		RawQuery: "?area=shibuya&date=2025-01-10&timeFrom=19:00&timeTo=23:30&priceMin=8000&priceMax=12000&mood=calm,healing&mood=calm&talk=quiet&pressure=firm&look=cute",
	})
	require.NoError(t, err)

	assert.Equal(t, "shibuya", out.GuestIntent.Area)
	assert.Equal(t, "2025-01-10", out.GuestIntent.Date)
	assert.Equal(t, []string{"calm", "healing"}, out.GuestIntent.MoodTags)
	assert.Equal(t, 8000, out.GuestIntent.PriceMin)

	// midpoint 10000 sits on the low ceiling
	assert.Equal(t, models.BudgetLow, out.GuestPreference.BudgetLevel)
	assert.Equal(t, models.TagWeights{"calm": 1, "healing": 1}, out.GuestPreference.Mood)
	assert.Equal(t, models.TagWeights{"quiet": 1}, out.GuestPreference.Talk)
	assert.Equal(t, models.TagWeights{"firm": 1}, out.GuestPreference.Style)
	assert.Equal(t, models.TagWeights{"cute": 1}, out.GuestPreference.Look)
}

func TestHandler_Execute_QueryMap(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Query: map[string]interface{}{
			"area":     "ebisu",
			"priceMax": float64(20000),
			"look":     []interface{}{"elegant", "cool"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ebisu", out.GuestIntent.Area)
	assert.Equal(t, 20000, out.GuestIntent.PriceMax)
	assert.Equal(t, models.BudgetHigh, out.GuestPreference.BudgetLevel)
	assert.ElementsMatch(t, []string{"elegant", "cool"}, out.GuestIntent.LookTags)
	assert.Nil(t, out.GuestPreference.Mood)
}

func TestHandler_Execute_EmptyQuery(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{RawQuery: ""})
	require.NoError(t, err)
	assert.Equal(t, models.GuestIntent{}, out.GuestIntent)
	assert.Equal(t, models.BudgetLevel(""), out.GuestPreference.BudgetLevel)
}

func TestHandler_Execute_InvalidIntent(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name  string
		input *Input
	}{
		{name: "bad date", input: &Input{RawQuery: "date=10-01-2025"}},
		{name: "reversed window", input: &Input{RawQuery: "timeFrom=22:00&timeTo=20:00"}},
		{name: "negative price", input: &Input{RawQuery: "priceMin=-1"}},
		{name: "malformed escape", input: &Input{RawQuery: "area=%zz"}},
		{name: "non string list item", input: &Input{Query: map[string]interface{}{"mood": []interface{}{1.0}}}},
		{name: "nested object", input: &Input{Query: map[string]interface{}{"area": map[string]interface{}{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			requireCode(t, err, apperrors.ErrCodeInvalidGuestIntent)
		})
	}
}

func TestHandler_Execute_NilInput(t *testing.T) {
	h := createTestHandler(t)
	_, err := h.Execute(context.Background(), nil)
	requireCode(t, err, apperrors.ErrCodeInputValidationFailed)
}

// ==========================
// Input parsing
// ==========================

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t)

	input, err := h.parseInput(createMockJob(1, map[string]interface{}{"rawQuery": "area=ginza"}))
	require.NoError(t, err)
	assert.Equal(t, "area=ginza", input.RawQuery)

	_, err = h.parseInput(createMockJob(2, map[string]interface{}{"unrelated": true}))
	requireCode(t, err, apperrors.ErrCodeInputValidationFailed)

	bad := createMockJob(3, nil)
	bad.Variables = "{not json"
	_, err = h.parseInput(bad)
	requireCode(t, err, apperrors.ErrCodeParseError)
}

func TestQueryValues_FormatsScalars(t *testing.T) {
	values, err := queryValues(&Input{Query: map[string]interface{}{
		"priceMin": float64(5000),
		"ratio":    1.5,
		"flag":     true,
		"skip":     nil,
	}})
	require.NoError(t, err)
	assert.Equal(t, "5000", values.Get("priceMin"))
	assert.Equal(t, "1.5", values.Get("ratio"))
	assert.Equal(t, "true", values.Get("flag"))
	_, ok := values["skip"]
	assert.False(t, ok)
}
