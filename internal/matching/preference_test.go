package matching

import (
	"testing"

	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBudgetLevelForRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		expected models.BudgetLevel
	}{
		{name: "unset", expected: ""},
		{name: "max only low", max: 9000, expected: models.BudgetLow},
		{name: "min only high", min: 20000, expected: models.BudgetHigh},
		{name: "midpoint mid", min: 10000, max: 16000, expected: models.BudgetMid},
		{name: "boundary low", max: LowBudgetCeiling, expected: models.BudgetLow},
		{name: "boundary mid", max: MidBudgetCeiling, expected: models.BudgetMid},
		{name: "negative ignored", min: -5, max: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BudgetLevelForRange(tt.min, tt.max))
		})
	}
}

func TestBuildPreference(t *testing.T) {
	intent := models.GuestIntent{
		Area:         "shibuya",
		PriceMax:     15000,
		LookTags:     []string{"natural", " ", "cute"},
		TalkPref:     "quiet",
		PressurePref: "firm",
		MoodTags:     []string{"calm"},
	}

	pref := BuildPreference(intent)

	assert.Equal(t, models.BudgetMid, pref.BudgetLevel)
	assert.Equal(t, models.TagWeights{"natural": 1, "cute": 1}, pref.Look)
	assert.Equal(t, models.TagWeights{"quiet": 1}, pref.Talk)
	assert.Equal(t, models.TagWeights{"firm": 1}, pref.Style)
	assert.Equal(t, models.TagWeights{"calm": 1}, pref.Mood)
}

func TestBuildPreference_EmptyIntentIsNeutral(t *testing.T) {
	pref := BuildPreference(models.GuestIntent{})

	assert.Empty(t, pref.BudgetLevel)
	assert.Nil(t, pref.Mood)
	assert.Nil(t, pref.Talk)
	assert.Nil(t, pref.Style)
	assert.Nil(t, pref.Look)

	res := ComputeMatchingScore(pref, models.TherapistProfile{ID: "t-1", PriceLevel: models.PriceTierStandard}, 0.5, 0.5)
	assert.Equal(t, 0.5, res.Breakdown.MoodFit)
	assert.Equal(t, 1.0, res.Breakdown.PriceFit)
}
