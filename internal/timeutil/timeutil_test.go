package timeutil

import (
	"testing"
	"time"
)

func TestParseRange(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30min", 30 * time.Minute},
		{"1day", 24 * time.Hour},
		{"7days", 7 * 24 * time.Hour},
		{"2hr", 2 * time.Hour},
		{"6 hours", 6 * time.Hour},
	}
	for _, c := range cases {
		got, err := ParseRange(c.in)
		if err != nil {
			t.Fatalf("ParseRange(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseRange(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseRangeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "days", "7weeks", "x7days"} {
		if _, err := ParseRange(in); err == nil {
			t.Fatalf("ParseRange(%q): expected error", in)
		}
	}
}

func TestParseTimeLenientZone(t *testing.T) {
	want := time.Date(2025, 3, 4, 12, 30, 0, 0, time.UTC)
	for _, in := range []string{
		"2025-03-04T12:30:00Z",
		"2025-03-04T12:30:00z",
		"2025-03-04T12:30:00",
	} {
		got, err := ParseTime(in)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseTime(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCalculateRange(t *testing.T) {
	from, to, err := CalculateRange("7days", "2025-03-08T00:00:00Z")
	if err != nil {
		t.Fatalf("CalculateRange: %v", err)
	}
	if from != "2025-03-01T00:00:00Z" {
		t.Fatalf("unexpected from: %q", from)
	}
	if to != "2025-03-08T00:00:00Z" {
		t.Fatalf("unexpected to: %q", to)
	}
}

func TestFormatTimestampDisplay(t *testing.T) {
	if got := FormatTimestampDisplay("2025-03-04T12:30:00Z", true); got != "2025-03-04 12:30:00 UTC" {
		t.Fatalf("unexpected display: %q", got)
	}
	// Unparseable input passes through.
	if got := FormatTimestampDisplay("not-a-time", true); got != "not-a-time" {
		t.Fatalf("unexpected passthrough: %q", got)
	}
}
