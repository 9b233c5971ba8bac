package generateslotgrid

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/availability"
	apperrors "matching-workers/internal/common/errors"
	commonhttp "matching-workers/internal/common/http"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func clockAt(t *testing.T, s string) availability.Option {
	now, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return availability.WithClock(func() time.Time { return now })
}

func createTestHandler(t *testing.T, src availability.WindowSource) *Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	week := availability.NewWeekAssembler(src, log, clockAt(t, "2025-03-10T08:00:00+09:00"))
	return NewHandler(LoadConfig(), week, nil, log)
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute_Week(t *testing.T) {
	src := availability.SourceFunc(func(ctx context.Context, id string, day time.Time) ([]models.AvailabilitySlot, error) {
		if day.Weekday() == time.Wednesday {
			return nil, errors.New("backend unavailable")
		}
		start := day.Add(13 * time.Hour)
		return []models.AvailabilitySlot{{StartAt: start, EndAt: start.Add(90 * time.Minute)}}, nil
	})
	h := createTestHandler(t, src)

	out, err := h.Execute(context.Background(), &Input{TherapistID: "t-1"})
	require.NoError(t, err)

	assert.Equal(t, "t-1", out.TherapistID)
	require.Len(t, out.Days, availability.Horizon)
	assert.Equal(t, "2025-03-10", out.Days[0].Date)
	assert.True(t, out.Days[0].IsToday)

	// 2025-03-12 is the failing Wednesday
	assert.Equal(t, "2025-03-12", out.Days[2].Date)
	assert.NotNil(t, out.Days[2].Slots)
	assert.Empty(t, out.Days[2].Slots)

	// 12:00-16:00 grid, three open slots per healthy day
	assert.Len(t, out.Days[0].Slots, 8)
	assert.Equal(t, 6*3, out.OpenSlots)
}

func TestHandler_Execute_HTTPBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/therapists/t-5/availability", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("date") == "2025-03-10" {
			_, _ = w.Write([]byte(`{"slots":[{"start_at":"2025-03-10T10:00:00+09:00","end_at":"2025-03-10T11:00:00+09:00"}]}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	h := createTestHandler(t, availability.NewHTTPSource(commonhttp.NewClient(time.Second, srv.URL)))

	out, err := h.Execute(context.Background(), &Input{TherapistID: "t-5"})
	require.NoError(t, err)
	require.Len(t, out.Days, availability.Horizon)
	assert.Equal(t, 2, out.OpenSlots)
	for _, d := range out.Days[1:] {
		assert.Empty(t, d.Slots, d.Date)
	}
}

func TestHandler_Execute_MissingTherapist(t *testing.T) {
	var called atomic.Bool
	h := createTestHandler(t, availability.SourceFunc(func(ctx context.Context, id string, day time.Time) ([]models.AvailabilitySlot, error) {
		called.Store(true)
		return nil, nil
	}))

	_, err := h.Execute(context.Background(), &Input{TherapistID: "  "})
	require.Error(t, err)
	assert.False(t, called.Load())
	assert.Equal(t, apperrors.ErrCodeInputValidationFailed, apperrors.AsStandardError(err).Code)
}
