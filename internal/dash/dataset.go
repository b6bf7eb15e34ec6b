package dash

import (
	"fmt"
	"sort"
)

// Entry is one row of a tab list: a display label plus the backing record
// shown when the row is drilled into.
type Entry struct {
	Label  string
	Record any
}

// Dataset is the most recently loaded contents of one tab. It is created
// whole when a fetch completes and replaced whole on refresh.
type Dataset struct {
	View    View
	Entries []Entry  // Endpoints and Insights rows
	Metrics []string // Metrics rows (metric-type names)
	Errors  []any    // Errors rows (raw error-group records)
}

func (d Dataset) Len() int {
	switch d.View {
	case ViewMetrics:
		return len(d.Metrics)
	case ViewErrors:
		return len(d.Errors)
	default:
		return len(d.Entries)
	}
}

// Label returns the display string for row i.
func (d Dataset) Label(i int) string {
	switch d.View {
	case ViewMetrics:
		if i < len(d.Metrics) {
			return d.Metrics[i]
		}
	case ViewErrors:
		if i < len(d.Errors) {
			if obj, ok := d.Errors[i].(map[string]any); ok {
				if s, ok := obj["message"].(string); ok && s != "" {
					return s
				}
				if s, ok := obj["name"].(string); ok && s != "" {
					return s
				}
			}
			return "?"
		}
	default:
		if i < len(d.Entries) {
			return d.Entries[i].Label
		}
	}
	return ""
}

// Item returns the drillable record at row i. Metrics rows have no record;
// use MetricType instead.
func (d Dataset) Item(i int) (Entry, bool) {
	switch d.View {
	case ViewMetrics:
		return Entry{}, false
	case ViewErrors:
		if i < len(d.Errors) {
			return Entry{Label: fmt.Sprintf("Error #%d", i+1), Record: d.Errors[i]}, true
		}
	default:
		if i < len(d.Entries) {
			return d.Entries[i], true
		}
	}
	return Entry{}, false
}

func (d Dataset) MetricType(i int) (string, bool) {
	if d.View == ViewMetrics && i < len(d.Metrics) {
		return d.Metrics[i], true
	}
	return "", false
}

// timeSortKey pulls a sortable timestamp string out of a record, trying the
// field names the API uses across entity kinds. ISO-8601 strings compare
// correctly lexically.
func timeSortKey(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	for _, field := range []string{"last_seen", "first_seen", "timestamp", "created_at", "time", "reported_at"} {
		if s, ok := obj[field].(string); ok {
			return s
		}
	}
	return ""
}

func sortEntriesByTimeDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return timeSortKey(entries[i].Record) > timeSortKey(entries[j].Record)
	})
}

// endpointDataset builds the Endpoints tab from a list-endpoints payload,
// which is either an array or an object wrapping one under "endpoints".
// Newest first.
func endpointDataset(payload any) Dataset {
	arr, _ := payload.([]any)
	if obj, ok := payload.(map[string]any); ok {
		if inner, ok := obj["endpoints"].([]any); ok {
			arr = inner
		}
	}
	entries := make([]Entry, 0, len(arr))
	for _, v := range arr {
		label := "?"
		if obj, ok := v.(map[string]any); ok {
			if s, ok := obj["name"].(string); ok && s != "" {
				label = s
			} else if s, ok := obj["transaction_name"].(string); ok && s != "" {
				label = s
			}
		}
		entries = append(entries, Entry{Label: label, Record: v})
	}
	sortEntriesByTimeDesc(entries)
	return Dataset{View: ViewEndpoints, Entries: entries}
}

// insightDataset flattens an insights payload, which groups items under
// per-category keys (n_plus_one, memory_bloat, slow_query). Newest first.
func insightDataset(payload any) Dataset {
	var entries []Entry
	if obj, ok := payload.(map[string]any); ok {
		kinds := make([]string, 0, len(obj))
		for k := range obj {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			arr, ok := obj[kind].([]any)
			if !ok {
				continue
			}
			for i, item := range arr {
				label := ""
				if m, ok := item.(map[string]any); ok {
					if s, ok := m["name"].(string); ok && s != "" {
						label = s
					} else if s, ok := m["title"].(string); ok && s != "" {
						label = s
					}
				}
				if label == "" {
					label = fmt.Sprintf("%s #%d", kind, i+1)
				}
				entries = append(entries, Entry{Label: label, Record: item})
			}
		}
	}
	if len(entries) == 0 {
		if arr, ok := payload.([]any); ok {
			for i, item := range arr {
				label := ""
				if m, ok := item.(map[string]any); ok {
					if s, ok := m["name"].(string); ok && s != "" {
						label = s
					} else if s, ok := m["title"].(string); ok && s != "" {
						label = s
					}
				}
				if label == "" {
					label = fmt.Sprintf("Item %d", i+1)
				}
				entries = append(entries, Entry{Label: label, Record: item})
			}
		}
	}
	sortEntriesByTimeDesc(entries)
	return Dataset{View: ViewInsights, Entries: entries}
}

func metricsDataset(names []string) Dataset {
	return Dataset{View: ViewMetrics, Metrics: names}
}

// errorsDataset sorts error groups newest first.
func errorsDataset(groups []any) Dataset {
	sorted := make([]any, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return timeSortKey(sorted[i]) > timeSortKey(sorted[j])
	})
	return Dataset{View: ViewErrors, Errors: sorted}
}
