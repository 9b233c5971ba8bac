package matching

import (
	"sort"

	"matching-workers/internal/models"
)

// RankMatchingCandidates scores every profile and returns them sorted by
// descending score, ties broken by ascending therapist id.
func (s *Scorer) RankMatchingCandidates(pref models.GuestPreference, profiles []models.TherapistProfile, core CoreScorer) []models.RankedCandidate {
	if core == nil {
		core = PerformanceCoreScorer{}
	}

	ranked := make([]models.RankedCandidate, 0, len(profiles))
	for _, p := range profiles {
		res := s.ComputeMatchingScore(pref, p, core.CoreScore(p), p.AvailabilityScore)
		ranked = append(ranked, models.RankedCandidate{
			Profile:          p,
			RecommendedScore: res.Score,
			Breakdown:        res.Breakdown,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i].RecommendedScore, ranked[i].Profile.ID, ranked[j].RecommendedScore, ranked[j].Profile.ID)
	})
	return ranked
}

// RankMatchingCandidates ranks with DefaultWeights.
func RankMatchingCandidates(pref models.GuestPreference, profiles []models.TherapistProfile, core CoreScorer) []models.RankedCandidate {
	return defaultScorer.RankMatchingCandidates(pref, profiles, core)
}

// SortMatchingResults orders results in place using the ranking order.
func SortMatchingResults(results []models.MatchingResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return less(results[i].Score, results[i].TherapistID, results[j].Score, results[j].TherapistID)
	})
}

func less(scoreA float64, idA string, scoreB float64, idB string) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	return idA < idB
}
