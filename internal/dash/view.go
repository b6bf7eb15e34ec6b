// Package dash implements the dashboard engine: navigation state, background
// tab loading, search filtering and series charting. It owns all mutable
// session state and exposes an abstract frame for the terminal layer to draw.
package dash

import "strings"

// View is one of the four dashboard tabs. Ordered and cyclic.
type View int

const (
	ViewEndpoints View = iota
	ViewInsights
	ViewMetrics
	ViewErrors
)

var allViews = [4]View{ViewEndpoints, ViewInsights, ViewMetrics, ViewErrors}

// Views returns the tab order used for the tab strip.
func Views() [4]View { return allViews }

func (v View) String() string {
	switch v {
	case ViewEndpoints:
		return "Endpoints"
	case ViewInsights:
		return "Insights"
	case ViewMetrics:
		return "Metrics"
	case ViewErrors:
		return "Errors"
	}
	return "?"
}

// Next wraps past Errors back to Endpoints.
func (v View) Next() View {
	return allViews[(int(v)+1)%len(allViews)]
}

// Prev wraps past Endpoints back to Errors.
func (v View) Prev() View {
	return allViews[(int(v)+len(allViews)-1)%len(allViews)]
}

// ParseView maps a tab name (case-insensitive) to a View. Unknown names
// fall back to Endpoints.
func ParseView(s string) View {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "insights":
		return ViewInsights
	case "metrics":
		return ViewMetrics
	case "errors":
		return ViewErrors
	default:
		return ViewEndpoints
	}
}
