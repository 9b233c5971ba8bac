package ranktherapists

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/validation"
	"matching-workers/internal/models"
	"matching-workers/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T, config *Config) *Handler {
	t.Helper()
	if config == nil {
		config = LoadConfig()
	}
	v, err := validation.NewSchemaValidator(registry.Default())
	require.NoError(t, err)
	return NewHandler(config, nil, nil, v, logger.NewTestLogger(t))
}

func createMockJob(variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:           42,
		Type:          TaskType,
		CustomHeaders: "{}",
		Retries:       1,
		Variables:     string(variablesJSON),
	}}
}

func candidates() []models.TherapistProfile {
	return []models.TherapistProfile{
		{ID: "c", PriceLevel: models.PriceTierPremium, MoodTags: []string{"energetic"}},
		{ID: "a", PriceLevel: models.PriceTierValue, MoodTags: []string{"calm"}},
		{ID: "b", PriceLevel: models.PriceTierValue, MoodTags: []string{"calm"}},
	}
}

func ids(ranked []models.RankedCandidate) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Profile.ID
	}
	return out
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute_OrdersByScoreThenID(t *testing.T) {
	h := createTestHandler(t, nil)

	out, err := h.Execute(context.Background(), &Input{
		GuestPreference: &models.GuestPreference{
			BudgetLevel: models.BudgetLow,
			Mood:        models.TagWeights{"calm": 1},
		},
		Candidates: candidates(),
		CoreScores: map[string]float64{"a": 0.5, "b": 0.5, "c": 0.5},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, ids(out.RankedCandidates))
	assert.Equal(t, 3, out.TotalCandidates)
	_, err = uuid.Parse(out.RankingID)
	assert.NoError(t, err)

	for i := 1; i < len(out.RankedCandidates); i++ {
		assert.GreaterOrEqual(t, out.RankedCandidates[i-1].RecommendedScore, out.RankedCandidates[i].RecommendedScore)
	}
}

func TestHandler_Execute_IntentBuildsPreference(t *testing.T) {
	h := createTestHandler(t, nil)

	out, err := h.Execute(context.Background(), &Input{
		GuestIntent: &models.GuestIntent{PriceMin: 18000, PriceMax: 25000, MoodTags: []string{"energetic"}},
		Candidates:  candidates(),
		CoreScores:  map[string]float64{"a": 0.5, "b": 0.5, "c": 0.5},
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.RankedCandidates)
	assert.Equal(t, "c", out.RankedCandidates[0].Profile.ID)
	assert.Equal(t, 1.0, out.RankedCandidates[0].Breakdown.PriceFit)
}

func TestHandler_Execute_MaxItems(t *testing.T) {
	h := createTestHandler(t, &Config{MaxRanked: 2})

	out, err := h.Execute(context.Background(), &Input{Candidates: candidates()})
	require.NoError(t, err)
	assert.Len(t, out.RankedCandidates, 2)
	assert.Equal(t, 3, out.TotalCandidates)

	out, err = h.Execute(context.Background(), &Input{Candidates: candidates(), MaxItems: 1})
	require.NoError(t, err)
	assert.Len(t, out.RankedCandidates, 1)
}

func TestHandler_Execute_EmptyCandidates(t *testing.T) {
	h := createTestHandler(t, nil)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, out.RankedCandidates)
	assert.Empty(t, out.RankedCandidates)
}

func TestHandler_Execute_MissingCoreScoreFallsBack(t *testing.T) {
	h := createTestHandler(t, nil)
	strong := models.TherapistProfile{ID: "z", AvgReviewScore: 5, RepeatRate30d: 1, Bookings30d: 20}
	weak := models.TherapistProfile{ID: "y"}

	out, err := h.Execute(context.Background(), &Input{
		Candidates: []models.TherapistProfile{weak, strong},
		CoreScores: map[string]float64{"y": 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "y"}, ids(out.RankedCandidates))
}

func TestHandler_ParseInput(t *testing.T) {
	h := createTestHandler(t, nil)

	input, err := h.parseInput(createMockJob(map[string]interface{}{
		"candidates": []interface{}{map[string]interface{}{"id": "a", "priceLevel": "value"}},
		"coreScores": map[string]interface{}{"a": 0.7},
	}))
	require.NoError(t, err)
	require.Len(t, input.Candidates, 1)
	assert.Equal(t, models.PriceTierValue, input.Candidates[0].PriceLevel)
	assert.Equal(t, 0.7, input.CoreScores["a"])

	_, err = h.parseInput(createMockJob(map[string]interface{}{
		"candidates": []interface{}{map[string]interface{}{"name": "no id"}},
	}))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInputValidationFailed, apperrors.AsStandardError(err).Code)

	_, err = h.parseInput(createMockJob(map[string]interface{}{
		"candidates": []interface{}{},
		"coreScores": map[string]interface{}{"a": "high"},
	}))
	require.Error(t, err)
}
