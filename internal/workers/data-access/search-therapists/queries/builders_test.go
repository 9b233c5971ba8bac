package queries

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/models"
)

func filters(t *testing.T, q map[string]interface{}) []interface{} {
	t.Helper()
	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	f, _ := boolQuery["filter"].([]interface{})
	return f
}

func TestBuildTherapistQuery_MatchAllWithoutFilters(t *testing.T) {
	q := BuildTherapistQuery(models.GuestIntent{})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 1)
	assert.Contains(t, must[0], "match_all")
	assert.Empty(t, filters(t, q))
}

func TestBuildTherapistQuery_Filters(t *testing.T) {
	q := BuildTherapistQuery(models.GuestIntent{Area: "ebisu", ShopID: "shop-9", PriceMax: 9000})

	f := filters(t, q)
	require.Len(t, f, 3)
	raw, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"term":{"area":"ebisu"}}`)
	assert.Contains(t, string(raw), `{"term":{"shopId":"shop-9"}}`)
	assert.Contains(t, string(raw), `"priceLevel":["value","standard"]`)
}

func TestAcceptedTiers(t *testing.T) {
	assert.Nil(t, acceptedTiers(""))
	assert.Nil(t, acceptedTiers("luxury"))
	assert.Equal(t, []string{"value", "standard"}, acceptedTiers(models.BudgetLow))
	assert.Equal(t, []string{"value", "standard", "premium"}, acceptedTiers(models.BudgetMid))
	assert.Equal(t, []string{"standard", "premium"}, acceptedTiers(models.BudgetHigh))
}
