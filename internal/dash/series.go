package dash

import (
	"math"
	"sort"
	"strings"

	"github.com/scoutapm/scout-cli/internal/timeutil"
)

// Point is one extracted time-series sample.
type Point struct {
	Timestamp string
	Value     float64
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func pointFrom(v any) (Point, bool) {
	if pair, ok := v.([]any); ok && len(pair) >= 2 {
		ts, tok := pair[0].(string)
		val, vok := asFloat(pair[1])
		if tok && vok {
			return Point{Timestamp: ts, Value: val}, true
		}
		return Point{}, false
	}
	if obj, ok := v.(map[string]any); ok {
		ts, tok := obj["timestamp"].(string)
		if !tok {
			ts, tok = obj["time"].(string)
		}
		val, vok := asFloat(obj["value"])
		if tok && vok {
			return Point{Timestamp: ts, Value: val}, true
		}
	}
	return Point{}, false
}

func pointsFromArray(arr []any) []Point {
	var out []Point
	for _, v := range arr {
		if p, ok := pointFrom(v); ok {
			out = append(out, p)
		}
	}
	return out
}

// CollectPoints extracts samples from a raw series payload, tolerating the
// shapes the API returns: an array of [timestamp, value] pairs or
// {timestamp, value} objects, an object wrapping such an array under
// "points" or "data", or one more level of nesting under the metric name.
func CollectPoints(payload any) []Point {
	switch v := payload.(type) {
	case []any:
		return pointsFromArray(v)
	case map[string]any:
		if arr, ok := v["points"].([]any); ok {
			return pointsFromArray(arr)
		}
		if arr, ok := v["data"].([]any); ok {
			return pointsFromArray(arr)
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if pts := CollectPoints(v[k]); len(pts) > 0 {
				return pts
			}
		}
	}
	return nil
}

// Downsample picks max evenly index-spaced points. N <= max is returned
// unchanged.
func Downsample(points []Point, max int) []Point {
	if max <= 0 || len(points) <= max {
		return points
	}
	step := float64(len(points)) / float64(max)
	out := make([]Point, 0, max)
	for i := 0; i < max; i++ {
		idx := int(math.Floor(float64(i) * step))
		if idx > len(points)-1 {
			idx = len(points) - 1
		}
		out = append(out, points[idx])
	}
	return out
}

// MetricUnit is the display unit for a metric type. Unknown types get none.
func MetricUnit(metricType string) string {
	switch strings.ToLower(strings.TrimSpace(metricType)) {
	case "throughput":
		return "RPM"
	case "response_time", "response_time_95th", "queue_time":
		return "ms"
	case "apdex":
		return "" // 0-1, unitless
	case "errors":
		return "count"
	}
	return ""
}

// CompactTimeLabel renders a timestamp in the display timezone and keeps
// only the trailing five characters for a narrow axis label.
func CompactTimeLabel(ts string, useUTC bool) string {
	display := timeutil.FormatTimestampDisplay(ts, useUTC)
	runes := []rune(display)
	if len(runes) > 5 {
		return string(runes[len(runes)-5:])
	}
	return display
}

// Bar is one chart column: a compact time label, the raw value, and the
// value scaled to 0-100 against the sampled maximum.
type Bar struct {
	Label  string
	Value  float64
	Scaled int
}

// Chart is a width-bounded rendering of a metric series.
type Chart struct {
	Bars     []Bar
	BarWidth int
	Unit     string
	Latest   float64
	Min      float64
	Max      float64
	Total    int // points before downsampling
}

// BuildChart turns a raw series payload into chart data sized for width
// terminal cells. Returns nil when the payload yields no points.
func BuildChart(payload any, width int, metricType string, useUTC bool) *Chart {
	points := CollectPoints(payload)
	if len(points) == 0 {
		return nil
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})

	innerW := width - 2
	if innerW < 0 {
		innerW = 0
	}
	targetBars := innerW / 4
	if targetBars < 1 {
		targetBars = 1
	} else if targetBars > 32 {
		targetBars = 32
	}
	sampled := Downsample(points, targetBars)

	maxV := 1.0
	minV := math.MaxFloat64
	for _, p := range sampled {
		if p.Value > maxV {
			maxV = p.Value
		}
		if p.Value < minV {
			minV = p.Value
		}
	}

	barWidth := 3
	if targetBars >= 24 {
		barWidth = 1
	} else if targetBars >= 12 {
		barWidth = 2
	}

	bars := make([]Bar, 0, len(sampled))
	for _, p := range sampled {
		scaled := int(math.Round(p.Value / maxV * 100))
		if scaled < 0 {
			scaled = 0
		} else if scaled > 100 {
			scaled = 100
		}
		bars = append(bars, Bar{
			Label:  CompactTimeLabel(p.Timestamp, useUTC),
			Value:  p.Value,
			Scaled: scaled,
		})
	}

	return &Chart{
		Bars:     bars,
		BarWidth: barWidth,
		Unit:     MetricUnit(metricType),
		Latest:   sampled[len(sampled)-1].Value,
		Min:      minV,
		Max:      maxV,
		Total:    len(points),
	}
}
