package dash

import (
	"strconv"
	"strings"
)

// Application is one entry of the picker list. The list is fetched once per
// session and only ever filtered, never mutated.
type Application struct {
	ID           uint64
	Name         string
	LastReported string
}

// ApplicationsFrom converts a raw application-list payload (array of objects
// with id/name fields) into the picker list, skipping malformed entries.
func ApplicationsFrom(payload []any) []Application {
	apps := make([]Application, 0, len(payload))
	for _, v := range payload {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		app := Application{Name: "?"}
		if n, ok := asFloat(obj["id"]); ok && n >= 0 {
			app.ID = uint64(n)
		}
		if s, ok := obj["name"].(string); ok && s != "" {
			app.Name = s
		}
		if s, ok := obj["last_reported_at"].(string); ok {
			app.LastReported = s
		}
		apps = append(apps, app)
	}
	return apps
}

// FilterApps returns the indices of apps whose name or decimal id contains
// query, case-insensitively. An empty query matches all, in original order.
func FilterApps(apps []Application, query string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]int, 0, len(apps))
	for i, app := range apps {
		if q == "" ||
			strings.Contains(strings.ToLower(app.Name), q) ||
			strings.Contains(strconv.FormatUint(app.ID, 10), q) {
			out = append(out, i)
		}
	}
	return out
}

// ResolveApp matches arg against the list by exact id or by name
// (case-insensitive). Used for the --app startup shortcut.
func ResolveApp(apps []Application, arg string) (int, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, false
	}
	if id, err := strconv.ParseUint(arg, 10, 64); err == nil {
		for i, app := range apps {
			if app.ID == id {
				return i, true
			}
		}
		return 0, false
	}
	lower := strings.ToLower(arg)
	for i, app := range apps {
		if strings.ToLower(app.Name) == lower {
			return i, true
		}
	}
	return 0, false
}
