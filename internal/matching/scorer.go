package matching

import "matching-workers/internal/models"

// Scorer computes matching scores with a fixed set of weights. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

var defaultScorer = NewScorer(DefaultWeights)

// Default returns the Scorer built from DefaultWeights.
func Default() *Scorer {
	return defaultScorer
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// ComputeMatchingScore scores one guest/therapist pair. coreScore and
// availabilityScore come from upstream and are clamped, never rejected.
func (s *Scorer) ComputeMatchingScore(pref models.GuestPreference, t models.TherapistProfile, coreScore, availabilityScore float64) models.MatchingResult {
	b := models.ScoreBreakdown{
		Core:         clamp01(coreScore),
		PriceFit:     priceFit(pref.BudgetLevel, t.PriceLevel),
		MoodFit:      tagSetFit(pref.Mood, t.MoodTags),
		TalkFit:      tagFit(pref.Talk, t.TalkStyle),
		StyleFit:     tagFit(pref.Style, t.PressureLevel),
		LookFit:      tagSetFit(pref.Look, t.LookTags),
		Availability: clamp01(availabilityScore),
	}

	// Each component is clamped again here so the total stays bounded even if
	// a sub-score computation misbehaves.
	w := s.weights
	score := w.Core*clamp01(b.Core) +
		w.Price*clamp01(b.PriceFit) +
		w.Mood*clamp01(b.MoodFit) +
		w.Talk*clamp01(b.TalkFit) +
		w.Style*clamp01(b.StyleFit) +
		w.Look*clamp01(b.LookFit) +
		w.Availability*clamp01(b.Availability)

	return models.MatchingResult{
		TherapistID: t.ID,
		Score:       score,
		Breakdown:   b,
	}
}

// RecommendedScore is the final score using the profile's own availability score.
func (s *Scorer) RecommendedScore(pref models.GuestPreference, t models.TherapistProfile, coreScore float64) float64 {
	return s.ComputeMatchingScore(pref, t, coreScore, t.AvailabilityScore).Score
}

// ComputeMatchingScore scores with DefaultWeights.
func ComputeMatchingScore(pref models.GuestPreference, t models.TherapistProfile, coreScore, availabilityScore float64) models.MatchingResult {
	return defaultScorer.ComputeMatchingScore(pref, t, coreScore, availabilityScore)
}

// RecommendedScore scores with DefaultWeights.
func RecommendedScore(pref models.GuestPreference, t models.TherapistProfile, coreScore float64) float64 {
	return defaultScorer.RecommendedScore(pref, t, coreScore)
}
