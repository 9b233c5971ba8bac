package matching

import (
	"strings"

	"matching-workers/internal/models"
)

// Budget ceilings in yen for a 60-minute course.
const (
	LowBudgetCeiling = 10000
	MidBudgetCeiling = 16000
)

// BudgetLevelForRange maps a guest price range onto a budget level. Zero
// bounds are treated as unset; an entirely unset range yields "".
func BudgetLevelForRange(priceMin, priceMax int) models.BudgetLevel {
	var ref int
	switch {
	case priceMin > 0 && priceMax > 0:
		ref = (priceMin + priceMax) / 2
	case priceMax > 0:
		ref = priceMax
	case priceMin > 0:
		ref = priceMin
	default:
		return ""
	}

	switch {
	case ref <= LowBudgetCeiling:
		return models.BudgetLow
	case ref <= MidBudgetCeiling:
		return models.BudgetMid
	default:
		return models.BudgetHigh
	}
}

// BuildPreference derives the scorer's preference record from a guest intent.
// Every selected tag gets full strength.
func BuildPreference(intent models.GuestIntent) models.GuestPreference {
	return models.GuestPreference{
		BudgetLevel: BudgetLevelForRange(intent.PriceMin, intent.PriceMax),
		Mood:        weightsFor(intent.MoodTags...),
		Talk:        weightsFor(intent.TalkPref),
		Style:       weightsFor(intent.PressurePref),
		Look:        weightsFor(intent.LookTags...),
	}
}

func weightsFor(tags ...string) models.TagWeights {
	var w models.TagWeights
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if w == nil {
			w = make(models.TagWeights, len(tags))
		}
		w[tag] = 1.0
	}
	return w
}
