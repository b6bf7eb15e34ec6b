package dash

import (
	"fmt"
	"strings"
)

// Frame is everything the terminal layer needs to draw one screen: a
// breadcrumb, the tab strip, list rows with a cursor, an optional
// full-screen text block, an optional raw series awaiting charting, and a
// busy count for the spinner.
type Frame struct {
	Breadcrumb []string
	TabNames   []string
	ActiveTab  int
	ShowTabs   bool

	Title    string
	Rows     []string
	Selected int

	Detail string // full screen text when non-empty (drill, loading, error)

	Series any    // raw metric series, charted at draw time with the width
	Metric string // metric type for the chart title and unit

	Busy int
}

// loadingMessage mirrors the priority order of transient states: an
// in-flight metric drill, then an in-flight empty tab, then a stored tab
// error with nothing else to show.
func (e *Engine) loadingMessage() string {
	if !e.inApp {
		return ""
	}
	if appID, metric, ok := e.loader.MetricPending(); ok {
		if appID == e.appID {
			return fmt.Sprintf("Loading metric %s…", metric)
		}
		return ""
	}
	key := e.currentKey()
	empty := e.currentData().Len() == 0
	if e.loader.Pending(key) && empty && e.drill == nil {
		return fmt.Sprintf("Loading %s…", strings.ToLower(e.view.String()))
	}
	if empty && e.drill == nil {
		if msg, ok := e.tabErrors[key]; ok {
			return fmt.Sprintf("Error: %s", msg)
		}
	}
	return ""
}

// Frame assembles the current draw state. It never blocks and never
// mutates the engine.
func (e *Engine) Frame() Frame {
	f := Frame{Busy: e.loader.Busy()}

	f.TabNames = make([]string, len(allViews))
	for i, v := range allViews {
		f.TabNames[i] = v.String()
	}
	f.ActiveTab = int(e.view)

	if e.inApp {
		f.Breadcrumb = []string{e.appName, e.view.String()}
		if e.drill != nil {
			f.Breadcrumb = append(f.Breadcrumb, e.drill.Label)
		}
		f.ShowTabs = true
	} else {
		f.Breadcrumb = []string{"Select app"}
	}

	if msg := e.loadingMessage(); msg != "" {
		if strings.HasPrefix(msg, "Error:") {
			f.Title = " Error "
			f.Detail = msg
		} else {
			f.Title = " Loading "
			f.Detail = fmt.Sprintf("⟳  %s\n\nUsually 1-3 seconds depending on network.\n\nPlease wait…", msg)
		}
		return f
	}

	if !e.inApp {
		indices := e.filteredApps()
		f.Rows = make([]string, 0, len(indices))
		for _, idx := range indices {
			app := e.apps[idx]
			f.Rows = append(f.Rows, fmt.Sprintf("%d  %s", app.ID, app.Name))
		}
		f.Selected = e.appSelected
		if e.search.Committed == "" {
			f.Title = " Select an app (Enter to open, type to search) "
		} else {
			f.Title = fmt.Sprintf(" Select an app — filter: %q (Enter to open) ", e.search.Committed)
		}
		return f
	}

	if e.drill != nil {
		f.Title = fmt.Sprintf(" %s ", e.drill.Label)
		if e.drill.Series != nil {
			f.Series = e.drill.Series
			f.Metric = e.drill.Metric
		} else {
			f.Detail = e.drill.Text
		}
		return f
	}

	data := e.currentData()
	f.Rows = make([]string, 0, data.Len())
	for i := 0; i < data.Len(); i++ {
		f.Rows = append(f.Rows, data.Label(i))
	}
	f.Selected = e.selected
	f.Title = fmt.Sprintf(" %s ", e.view.String())
	return f
}
