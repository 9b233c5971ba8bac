package matching

import "matching-workers/internal/models"

// CoreScorer supplies the upstream core-fit score (area, time and basic
// conditions) for a candidate.
type CoreScorer interface {
	CoreScore(t models.TherapistProfile) float64
}

// CoreScorerFunc adapts a plain function to CoreScorer.
type CoreScorerFunc func(t models.TherapistProfile) float64

func (f CoreScorerFunc) CoreScore(t models.TherapistProfile) float64 {
	return f(t)
}

// StaticCoreScores looks scores up by therapist id. Unknown ids score 0.
type StaticCoreScores map[string]float64

func (m StaticCoreScores) CoreScore(t models.TherapistProfile) float64 {
	return m[t.ID]
}

const (
	newcomerWindowDays = 30
	bookingVolumeCap   = 20.0
	maxReviewScore     = 5.0
)

// PerformanceCoreScorer estimates core fit from a therapist's own track
// record when no upstream score is available.
type PerformanceCoreScorer struct{}

func (PerformanceCoreScorer) CoreScore(t models.TherapistProfile) float64 {
	review := clamp01(t.AvgReviewScore / maxReviewScore)
	repeat := clamp01(t.RepeatRate30d)
	volume := clamp01(float64(t.Bookings30d) / bookingVolumeCap)
	capacity := clamp01(1 - t.UtilizationRate7d)
	newcomer := 0.0
	if t.DaysSinceFirstShift >= 0 && t.DaysSinceFirstShift <= newcomerWindowDays {
		newcomer = 1
	}
	return clamp01(0.35*review + 0.25*repeat + 0.20*volume + 0.10*newcomer + 0.10*capacity)
}

// FallbackCoreScorer prefers explicit scores and falls back to Fallback for
// ids not present in Scores.
type FallbackCoreScorer struct {
	Scores   map[string]float64
	Fallback CoreScorer
}

func (f FallbackCoreScorer) CoreScore(t models.TherapistProfile) float64 {
	if v, ok := f.Scores[t.ID]; ok {
		return v
	}
	if f.Fallback == nil {
		return 0
	}
	return f.Fallback.CoreScore(t)
}
