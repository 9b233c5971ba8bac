// internal/models/matching.go
package models

// ScoreBreakdown holds each clamped sub-score that entered the weighted sum.
type ScoreBreakdown struct {
	Core         float64 `json:"core"`
	PriceFit     float64 `json:"priceFit"`
	MoodFit      float64 `json:"moodFit"`
	TalkFit      float64 `json:"talkFit"`
	StyleFit     float64 `json:"styleFit"`
	LookFit      float64 `json:"lookFit"`
	Availability float64 `json:"availability"`
}

type MatchingResult struct {
	TherapistID string         `json:"therapistId"`
	Score       float64        `json:"score"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
}

type RankedCandidate struct {
	Profile          TherapistProfile `json:"profile"`
	RecommendedScore float64          `json:"recommendedScore"`
	Breakdown        ScoreBreakdown   `json:"breakdown"`
}
