// Package timeutil parses and formats the ISO 8601 timestamps and relative
// ranges ("30min", "6hours", "7days") used by the ScoutAPM API.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// FormatTime renders a timestamp the way the API expects it: UTC, second
// precision, trailing Z.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// ParseTime parses an ISO 8601 timestamp. A missing or lowercase zone suffix
// is tolerated; the result is always UTC.
func ParseTime(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSuffix(trimmed, "Z")
	trimmed = strings.TrimSuffix(trimmed, "z")
	if t, err := time.Parse(time.RFC3339, trimmed+"Z"); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// ParseRange converts a range string like "30min", "2hr" or "7days" into a
// duration.
func ParseRange(raw string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")
	numEnd := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		numEnd++
	}
	if numEnd == 0 {
		return 0, fmt.Errorf("invalid range: %s", raw)
	}
	var n int64
	if _, err := fmt.Sscanf(s[:numEnd], "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid range: %s", raw)
	}
	unit := s[numEnd:]
	switch {
	case strings.HasPrefix(unit, "min"):
		return time.Duration(n) * time.Minute, nil
	case strings.HasPrefix(unit, "hr"), strings.HasPrefix(unit, "hour"):
		return time.Duration(n) * time.Hour, nil
	case strings.HasPrefix(unit, "day"):
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("unknown time unit in range: %s", raw)
}

// CalculateRange computes (from, to) API timestamps for a range ending at
// `to`, or at the current time when `to` is empty.
func CalculateRange(rng, to string) (string, string, error) {
	end := time.Now().UTC()
	if to != "" {
		t, err := ParseTime(to)
		if err != nil {
			return "", "", err
		}
		end = t
	}
	d, err := ParseRange(rng)
	if err != nil {
		return "", "", err
	}
	start := end.Add(-d)
	return FormatTime(start), FormatTime(end), nil
}

// FormatTimestampDisplay renders an API timestamp for humans, either in UTC
// or the local timezone. Unparseable input is returned unchanged.
func FormatTimestampDisplay(ts string, useUTC bool) string {
	t, err := ParseTime(ts)
	if err != nil {
		return ts
	}
	if useUTC {
		return t.Format("2006-01-02 15:04:05") + " UTC"
	}
	return t.Local().Format("2006-01-02 15:04:05 -07:00")
}
