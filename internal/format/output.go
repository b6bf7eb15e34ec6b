// Package format renders batch-mode query results as plain text or JSON.
package format

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Output selects how batch results are printed.
type Output int

const (
	// Plain renders human-readable tables and key-value listings.
	Plain Output = iota
	// JSON renders pretty-printed JSON.
	JSON
)

// ParseOutput parses an --output flag value.
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "text", "p":
		return Plain, nil
	case "json", "j":
		return JSON, nil
	}
	return Plain, fmt.Errorf("unknown output format: %s", s)
}

const cellWidth = 12

// FormatPlain renders a decoded JSON value as plain text: arrays of objects
// become aligned tables, objects become key:value listings.
func FormatPlain(v any) string {
	var b strings.Builder
	formatPlain(v, &b, 0)
	return b.String()
}

func formatPlain(v any, b *strings.Builder, indent int) {
	pad := strings.Repeat("  ", indent)
	switch val := v.(type) {
	case nil:
		fmt.Fprintf(b, "%snull\n", pad)
	case bool:
		fmt.Fprintf(b, "%s%v\n", pad, val)
	case float64:
		fmt.Fprintf(b, "%s%s\n", pad, formatNumber(val))
	case string:
		fmt.Fprintf(b, "%s%s\n", pad, val)
	case []any:
		if len(val) == 0 {
			fmt.Fprintf(b, "%s<empty>\n", pad)
			return
		}
		if first, ok := val[0].(map[string]any); ok && len(val) > 1 {
			keys := sortedKeys(first)
			if len(keys) > 0 {
				writeTable(b, pad, keys, val)
				return
			}
		}
		for i, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				fmt.Fprintf(b, "%s[%d]\n", pad, i+1)
				formatPlain(item, b, indent+1)
			default:
				formatPlain(item, b, indent)
			}
		}
	case map[string]any:
		for _, k := range sortedKeys(val) {
			child := val[k]
			switch child.(type) {
			case map[string]any, []any:
				fmt.Fprintf(b, "%s%s:\n", pad, k)
				formatPlain(child, b, indent+1)
			default:
				fmt.Fprintf(b, "%s%s: %s\n", pad, k, shortString(child))
			}
		}
	default:
		fmt.Fprintf(b, "%s%v\n", pad, val)
	}
}

func writeTable(b *strings.Builder, pad string, keys []string, rows []any) {
	header := make([]string, len(keys))
	for i, k := range keys {
		header[i] = fmt.Sprintf("%*s", cellWidth, truncateCell(k))
	}
	head := strings.Join(header, " ")
	fmt.Fprintf(b, "%s%s\n", pad, head)
	rule := len(head)
	if rule > 80 {
		rule = 80
	}
	fmt.Fprintf(b, "%s%s\n", pad, strings.Repeat("-", rule))
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			continue
		}
		cells := make([]string, len(keys))
		for i, k := range keys {
			cells[i] = fmt.Sprintf("%*s", cellWidth, truncateCell(shortString(obj[k])))
		}
		fmt.Fprintf(b, "%s%s\n", pad, strings.Join(cells, " "))
	}
}

// shortString renders scalars compactly; containers collapse to a dash so
// table cells stay one line.
func shortString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return fmt.Sprintf("%v", val)
	case float64:
		return formatNumber(val)
	}
	return "-"
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func truncateCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= cellWidth {
		return s
	}
	return s[:cellWidth-1] + "…"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatJSON renders a value as indented JSON.
func FormatJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FormatJSONCompact renders a value as single-line JSON for machine output.
func FormatJSONCompact(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
