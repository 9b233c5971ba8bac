// internal/workers/data-access/search-therapists/queries/builders.go
package queries

import (
	"matching-workers/internal/matching"
	"matching-workers/internal/models"
)

// Free-text fields of the therapist index and their boosts.
var textFields = []string{"name^3", "profileText^2", "moodTags", "lookTags"}

// BuildTherapistQuery turns a guest intent into an Elasticsearch bool query.
// Area and shop are hard filters. A price range only excludes therapists two
// tiers away from the guest's budget, and documents without a price level pass.
func BuildTherapistQuery(intent models.GuestIntent) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if intent.FreeText != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  intent.FreeText,
				"fields": textFields,
				"type":   "best_fields",
			},
		})
	}
	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	if intent.Area != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"area": intent.Area},
		})
	}
	if intent.ShopID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"shopId": intent.ShopID},
		})
	}
	if tiers := acceptedTiers(matching.BudgetLevelForRange(intent.PriceMin, intent.PriceMax)); len(tiers) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{"terms": map[string]interface{}{"priceLevel": tiers}},
					map[string]interface{}{"bool": map[string]interface{}{
						"must_not": map[string]interface{}{"exists": map[string]interface{}{"field": "priceLevel"}},
					}},
				},
				"minimum_should_match": 1,
			},
		})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

// acceptedTiers lists the tier names within one step of the budget.
func acceptedTiers(budget models.BudgetLevel) []string {
	if budget == "" {
		return nil
	}
	center := budget.Tier()
	if !center.Valid() {
		return nil
	}
	var names []string
	for t := center - 1; t <= center+1; t++ {
		if t.Valid() {
			names = append(names, t.String())
		}
	}
	return names
}
