package dash

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const detailKeyWidth = 24

// FormatRecord renders a record as an aligned key-value table for the drill
// view. Non-object records and empty objects render a placeholder.
func FormatRecord(v any) string {
	obj, _ := v.(map[string]any)
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	maxKey := 0
	for _, k := range keys {
		if len(k) > maxKey {
			maxKey = len(k)
		}
	}
	if maxKey > detailKeyWidth {
		maxKey = detailKeyWidth
	}

	var b strings.Builder
	for _, k := range keys {
		key := k
		if len(key) > maxKey {
			key = key[:maxKey]
		}
		val := strings.ReplaceAll(detailValue(obj[k]), "\n", " ")
		fmt.Fprintf(&b, "  %-*s  %s\n", maxKey, key, val)
	}
	if b.Len() == 0 {
		return "  (no data)"
	}
	return b.String()
}

func detailValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "—"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case []any:
		return fmt.Sprintf("[%d items]", len(val))
	case map[string]any:
		return "{…}"
	}
	return fmt.Sprintf("%v", v)
}
