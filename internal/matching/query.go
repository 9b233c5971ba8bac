package matching

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"matching-workers/internal/models"
)

// IntentError reports a query parameter that cannot form a guest intent.
type IntentError struct {
	Param  string
	Reason string
}

func (e *IntentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// ParseGuestIntent builds a GuestIntent from search query parameters. Tag
// parameters may repeat or hold comma-separated values.
func ParseGuestIntent(q url.Values) (models.GuestIntent, error) {
	intent := models.GuestIntent{
		Area:         strings.TrimSpace(q.Get("area")),
		Date:         strings.TrimSpace(q.Get("date")),
		TimeFrom:     strings.TrimSpace(q.Get("timeFrom")),
		TimeTo:       strings.TrimSpace(q.Get("timeTo")),
		ShopID:       strings.TrimSpace(q.Get("shopId")),
		LookTags:     splitTags(q["look"]),
		TalkPref:     strings.TrimSpace(q.Get("talk")),
		PressurePref: strings.TrimSpace(q.Get("pressure")),
		MoodTags:     splitTags(q["mood"]),
		FreeText:     strings.TrimSpace(q.Get("q")),
	}

	if intent.Date != "" {
		if _, err := time.Parse("2006-01-02", intent.Date); err != nil {
			return intent, &IntentError{Param: "date", Reason: "expected YYYY-MM-DD"}
		}
	}

	from, err := parseClock("timeFrom", intent.TimeFrom)
	if err != nil {
		return intent, err
	}
	to, err := parseClock("timeTo", intent.TimeTo)
	if err != nil {
		return intent, err
	}
	if from >= 0 && to >= 0 && from >= to {
		return intent, &IntentError{Param: "timeTo", Reason: "must be after timeFrom"}
	}

	if intent.PriceMin, err = parseYen("priceMin", q.Get("priceMin")); err != nil {
		return intent, err
	}
	if intent.PriceMax, err = parseYen("priceMax", q.Get("priceMax")); err != nil {
		return intent, err
	}
	if intent.PriceMin > 0 && intent.PriceMax > 0 && intent.PriceMin > intent.PriceMax {
		return intent, &IntentError{Param: "priceMax", Reason: "must not be below priceMin"}
	}

	return intent, nil
}

// parseClock returns minutes since midnight for HH:MM, or -1 when s is empty.
func parseClock(param, s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	if s == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, &IntentError{Param: param, Reason: "expected HH:MM"}
	}
	return t.Hour()*60 + t.Minute(), nil
}

func parseYen(param, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &IntentError{Param: param, Reason: "expected a non-negative integer"}
	}
	return n, nil
}

func splitTags(values []string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}
