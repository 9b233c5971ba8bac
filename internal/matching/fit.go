package matching

import (
	"math"

	"matching-workers/internal/models"
)

const neutralFit = 0.5

// Price-fit curve indexed by tier distance.
var priceFitByGap = [...]float64{1.0, 0.6, 0.3}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 1)
}

func priceFit(budget models.BudgetLevel, tier models.PriceTier) float64 {
	guestTier := budget.Tier()
	if !guestTier.Valid() || !tier.Valid() {
		return neutralFit
	}
	gap := int(guestTier) - int(tier)
	if gap < 0 {
		gap = -gap
	}
	if gap >= len(priceFitByGap) {
		return priceFitByGap[len(priceFitByGap)-1]
	}
	return priceFitByGap[gap]
}

// tagFit scores a single-tag axis.
func tagFit(weights models.TagWeights, tag string) float64 {
	if len(weights) == 0 || tag == "" {
		return neutralFit
	}
	return clamp01(weights.Weight(tag))
}

// tagSetFit scores a set-valued axis by its best-matching tag.
func tagSetFit(weights models.TagWeights, tags []string) float64 {
	if len(weights) == 0 || len(tags) == 0 {
		return neutralFit
	}
	best := 0.0
	seen := false
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		seen = true
		if w := clamp01(weights.Weight(tag)); w > best {
			best = w
		}
	}
	if !seen {
		return neutralFit
	}
	return best
}
