package availability

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"matching-workers/internal/models"
)

// ShiftRule is one recurring shift, e.g. every Friday 18:00 to 26:00.
// End may pass 24:00 for shifts that run past midnight.
type ShiftRule struct {
	RRule   string   `yaml:"rrule" validate:"required"`
	Start   string   `yaml:"start" validate:"required"`
	End     string   `yaml:"end" validate:"required"`
	Since   string   `yaml:"since,omitempty"`
	ExDates []string `yaml:"exdates,omitempty"`
}

// RuleFile is the on-disk layout of the weekly shift patterns, keyed by therapist id.
type RuleFile struct {
	Therapists map[string][]ShiftRule `yaml:"therapists" validate:"required,dive,dive"`
}

type compiledShift struct {
	option   rrule.ROption
	exdates  []time.Time
	startMin int
	endMin   int
}

// RuleSource serves windows expanded from recurring shift rules instead of a
// live backend.
type RuleSource struct {
	shifts map[string][]compiledShift
}

var (
	ruleValidate = validator.New()
	defaultSince = time.Date(2024, time.January, 1, 0, 0, 0, 0, JST)
)

// Latest accepted shift end, as minutes after the shift day's midnight.
const maxShiftEndMinutes = 30 * 60

// LoadRuleSource reads and compiles a YAML rule file.
func LoadRuleSource(path string) (*RuleSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules compiles every rule and rejects the file on the first invalid one.
func ParseRules(data []byte) (*RuleSource, error) {
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if err := ruleValidate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid rules file: %w", err)
	}

	src := &RuleSource{shifts: make(map[string][]compiledShift, len(file.Therapists))}
	for id, rules := range file.Therapists {
		for i, r := range rules {
			c, err := compileShift(r)
			if err != nil {
				return nil, fmt.Errorf("therapists.%s[%d]: %w", id, i, err)
			}
			src.shifts[id] = append(src.shifts[id], c)
		}
	}
	return src, nil
}

func compileShift(r ShiftRule) (compiledShift, error) {
	opt, err := rrule.StrToROption(r.RRule)
	if err != nil {
		return compiledShift{}, fmt.Errorf("invalid rrule: %w", err)
	}

	since := defaultSince
	if r.Since != "" {
		if since, err = ParseDate(r.Since); err != nil {
			return compiledShift{}, fmt.Errorf("invalid since: %w", err)
		}
	}
	opt.Dtstart = since
	if _, err := rrule.NewRRule(*opt); err != nil {
		return compiledShift{}, fmt.Errorf("invalid rrule: %w", err)
	}

	c := compiledShift{option: *opt}
	if c.startMin, err = shiftClock(r.Start); err != nil {
		return compiledShift{}, fmt.Errorf("invalid start: %w", err)
	}
	if c.endMin, err = shiftClock(r.End); err != nil {
		return compiledShift{}, fmt.Errorf("invalid end: %w", err)
	}
	if c.endMin <= c.startMin || c.startMin >= 24*60 || c.endMin > maxShiftEndMinutes {
		return compiledShift{}, fmt.Errorf("shift %s-%s is out of range", r.Start, r.End)
	}

	for _, d := range r.ExDates {
		t, err := ParseDate(d)
		if err != nil {
			return compiledShift{}, fmt.Errorf("invalid exdate %q: %w", d, err)
		}
		c.exdates = append(c.exdates, t)
	}
	return c, nil
}

// shiftClock parses HH:MM with hours up to 30 into minutes after midnight.
func shiftClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return h*60 + m, nil
}

// FetchWindows returns one window per shift whose rule has an occurrence on day.
// Unknown therapists have no windows.
func (s *RuleSource) FetchWindows(ctx context.Context, therapistID string, day time.Time) ([]models.AvailabilitySlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dayStart := DayStart(day)
	var windows []models.AvailabilitySlot
	for _, shift := range s.shifts[therapistID] {
		on, err := shift.occursOn(dayStart)
		if err != nil {
			return nil, err
		}
		if !on {
			continue
		}
		windows = append(windows, models.AvailabilitySlot{
			StartAt: dayStart.Add(time.Duration(shift.startMin) * time.Minute),
			EndAt:   dayStart.Add(time.Duration(shift.endMin) * time.Minute),
		})
	}
	return windows, nil
}

// occursOn builds its own rule set on every call; compiledShift is shared
// by the concurrent day fetches of a week.
func (c compiledShift) occursOn(dayStart time.Time) (bool, error) {
	rule, err := rrule.NewRRule(c.option)
	if err != nil {
		return false, err
	}
	set := &rrule.Set{}
	set.RRule(rule)
	for _, ex := range c.exdates {
		set.ExDate(ex)
	}
	return len(set.Between(dayStart, dayStart.Add(24*time.Hour-time.Nanosecond), true)) > 0, nil
}

func (s *RuleSource) Name() string { return "rules" }
