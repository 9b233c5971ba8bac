package availability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/models"
)

// Horizon is the number of consecutive days in a generated week, today included.
const Horizon = 7

// WeekAssembler fetches raw windows for every day of the horizon
// concurrently and turns each day into a slot grid.
type WeekAssembler struct {
	source     WindowSource
	sourceName string
	now        func() time.Time
	logger     logger.Logger
}

type Option func(*WeekAssembler)

// WithClock overrides the clock used to determine today.
func WithClock(now func() time.Time) Option {
	return func(w *WeekAssembler) { w.now = now }
}

func NewWeekAssembler(source WindowSource, log logger.Logger, opts ...Option) *WeekAssembler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	w := &WeekAssembler{
		source:     source,
		sourceName: sourceName(source),
		now:        time.Now,
		logger:     log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Generate returns Horizon days starting today in JST. A day whose fetch
// fails is returned with an empty slot list; Generate itself never fails.
func (w *WeekAssembler) Generate(ctx context.Context, therapistID string) []models.DaySlots {
	today := DayStart(w.now())
	windows := make([][]models.AvailabilitySlot, Horizon)

	var g errgroup.Group
	for i := 0; i < Horizon; i++ {
		i := i
		day := today.AddDate(0, 0, i)
		g.Go(func() error {
			windows[i] = w.fetchDay(ctx, therapistID, day)
			return nil
		})
	}
	_ = g.Wait()

	days := make([]models.DaySlots, Horizon)
	for i := range days {
		day := today.AddDate(0, 0, i)
		days[i] = models.DaySlots{
			Date:    day.Format(DateLayout),
			IsToday: i == 0,
			Slots:   BuildDayGrid(day, windows[i]),
		}
	}
	return days
}

func (w *WeekAssembler) fetchDay(ctx context.Context, therapistID string, day time.Time) (out []models.AvailabilitySlot) {
	date := day.Format(DateLayout)
	ctx, span := observability.StartSpan(ctx, "availability.fetch_day", map[string]string{
		"therapist_id": therapistID,
		"date":         date,
	})
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			w.degrade(therapistID, date, fmt.Errorf("panic: %v", r))
			out = nil
		}
	}()

	slots, err := w.source.FetchWindows(ctx, therapistID, day)
	if err != nil {
		span.RecordError(err)
		w.degrade(therapistID, date, err)
		return nil
	}
	return slots
}

func (w *WeekAssembler) degrade(therapistID, date string, err error) {
	metrics.AvailabilityDayFetchFailures.WithLabelValues(w.sourceName).Inc()
	w.logger.Warn("Availability fetch failed, treating day as empty", map[string]interface{}{
		"therapistId": therapistID,
		"date":        date,
		"error":       err,
	})
}

func sourceName(s WindowSource) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "custom"
}
