package availability

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matching-workers/internal/common/logger"
	"matching-workers/internal/models"
)

const shiftRules = `
therapists:
  t-1:
    - rrule: "FREQ=WEEKLY;BYDAY=MO,WE"
      start: "18:00"
      end: "22:30"
      exdates: ["2025-01-08"]
    - rrule: "FREQ=WEEKLY;BYDAY=SA"
      start: "20:00"
      end: "26:00"
  t-2:
    - rrule: "FREQ=WEEKLY;INTERVAL=2;BYDAY=TU"
      start: "10:00"
      end: "12:00"
      since: "2025-01-07"
`

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestRuleSource_FetchWindows(t *testing.T) {
	src, err := ParseRules([]byte(shiftRules))
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name      string
		therapist string
		date      string
		want      []string
	}{
		{name: "monday shift", therapist: "t-1", date: "2025-01-06", want: []string{"2025-01-06T18:00:00+09:00/2025-01-06T22:30:00+09:00"}},
		{name: "no rule on tuesday", therapist: "t-1", date: "2025-01-07"},
		{name: "excluded wednesday", therapist: "t-1", date: "2025-01-08"},
		{name: "next wednesday", therapist: "t-1", date: "2025-01-15", want: []string{"2025-01-15T18:00:00+09:00/2025-01-15T22:30:00+09:00"}},
		{name: "shift past midnight", therapist: "t-1", date: "2025-01-11", want: []string{"2025-01-11T20:00:00+09:00/2025-01-12T02:00:00+09:00"}},
		{name: "biweekly on", therapist: "t-2", date: "2025-01-21", want: []string{"2025-01-21T10:00:00+09:00/2025-01-21T12:00:00+09:00"}},
		{name: "biweekly off", therapist: "t-2", date: "2025-01-14"},
		{name: "before since", therapist: "t-2", date: "2024-12-24"},
		{name: "unknown therapist", therapist: "t-9", date: "2025-01-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := src.FetchWindows(ctx, tt.therapist, mustDay(t, tt.date))
			require.NoError(t, err)
			var got []string
			for _, w := range windows {
				got = append(got, w.StartAt.Format(time.RFC3339)+"/"+w.EndAt.Format(time.RFC3339))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleSource_LateShiftGridEndsAtMidnight(t *testing.T) {
	src, err := ParseRules([]byte(shiftRules))
	require.NoError(t, err)

	w := NewWeekAssembler(src, logger.NewTestLogger(t), WithClock(func() time.Time { return mustDay(t, "2025-01-11") }))
	days := w.Generate(context.Background(), "t-1")
	require.Len(t, days, Horizon)

	saturday := days[0].Slots
	require.NotEmpty(t, saturday)
	assert.Equal(t, 19, saturday[0].Start.Hour())
	last := saturday[len(saturday)-1]
	assert.True(t, last.End.Equal(mustDay(t, "2025-01-12")))
	assert.Equal(t, models.SlotOpen, last.Status)

	// Sunday has no rule; Monday has its evening shift.
	assert.Empty(t, days[1].Slots)
	assert.NotEmpty(t, days[2].Slots)
}

func TestParseRules_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "not yaml", yaml: "therapists: [unclosed"},
		{name: "no therapists", yaml: "other: 1"},
		{name: "missing rrule", yaml: "therapists:\n  t-1:\n    - start: \"10:00\"\n      end: \"11:00\"\n"},
		{name: "bad rrule", yaml: "therapists:\n  t-1:\n    - rrule: \"FREQ=SOMETIMES\"\n      start: \"10:00\"\n      end: \"11:00\"\n"},
		{name: "bad clock", yaml: "therapists:\n  t-1:\n    - rrule: \"FREQ=DAILY\"\n      start: \"10h\"\n      end: \"11:00\"\n"},
		{name: "reversed shift", yaml: "therapists:\n  t-1:\n    - rrule: \"FREQ=DAILY\"\n      start: \"12:00\"\n      end: \"11:00\"\n"},
		{name: "too late", yaml: "therapists:\n  t-1:\n    - rrule: \"FREQ=DAILY\"\n      start: \"23:00\"\n      end: \"31:00\"\n"},
		{name: "bad exdate", yaml: "therapists:\n  t-1:\n    - rrule: \"FREQ=DAILY\"\n      start: \"10:00\"\n      end: \"11:00\"\n      exdates: [\"tomorrow\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadRuleSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shifts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shiftRules), 0o600))

	src, err := LoadRuleSource(path)
	require.NoError(t, err)
	assert.Equal(t, "rules", src.Name())

	_, err = LoadRuleSource(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
