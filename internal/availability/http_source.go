package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	commonhttp "matching-workers/internal/common/http"
	"matching-workers/internal/models"
)

// HTTPSource reads windows from the backend availability endpoint,
// trying each configured base URL in order.
type HTTPSource struct {
	client *commonhttp.Client
}

func NewHTTPSource(client *commonhttp.Client) *HTTPSource {
	return &HTTPSource{client: client}
}

// slotList accepts both {"slots":[...]} and a bare array.
type slotList []models.AvailabilitySlot

func (s *slotList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var arr []models.AvailabilitySlot
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return err
		}
		*s = arr
		return nil
	}

	var wrapped struct {
		Slots []models.AvailabilitySlot `json:"slots"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	*s = wrapped.Slots
	return nil
}

func (h *HTTPSource) FetchWindows(ctx context.Context, therapistID string, day time.Time) ([]models.AvailabilitySlot, error) {
	path := fmt.Sprintf("/therapists/%s/availability", url.PathEscape(therapistID))
	query := url.Values{"date": {DayStart(day).Format(DateLayout)}}

	var slots slotList
	if err := h.client.GetJSON(ctx, path, query, &slots); err != nil {
		return nil, fmt.Errorf("fetch availability for %s: %w", therapistID, err)
	}
	return slots, nil
}

func (h *HTTPSource) Name() string { return "http" }
