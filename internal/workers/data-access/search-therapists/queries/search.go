// internal/workers/data-access/search-therapists/queries/search.go
package queries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"matching-workers/internal/models"
)

var ErrMissingIndex = errors.New("index name is required")

type SearchResult struct {
	Candidates []models.TherapistProfile
	TotalHits  int64
	Took       int64
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string                  `json:"_id"`
			Source models.TherapistProfile `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs body against index and decodes every hit as a therapist profile.
// A hit without an id in its source takes the document id.
func Search(ctx context.Context, es *elasticsearch.Client, index string, body map[string]interface{}, size int) (*SearchResult, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(payload),
		Size:  &size,
	}
	res, err := req.Do(ctx, es)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	candidates := make([]models.TherapistProfile, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		profile := hit.Source
		if profile.ID == "" {
			profile.ID = hit.ID
		}
		candidates = append(candidates, profile)
	}

	return &SearchResult{
		Candidates: candidates,
		TotalHits:  r.Hits.Total.Value,
		Took:       r.Took,
	}, nil
}
