package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutapm/scout-cli/internal/dash"
)

type cannedGateway struct {
	endpoints   any
	insights    any
	metricTypes []string
	series      any
	errorGroups []any
}

func (g cannedGateway) Endpoints(context.Context, uint64) (any, error) { return g.endpoints, nil }
func (g cannedGateway) Insights(context.Context, uint64) (any, error)  { return g.insights, nil }
func (g cannedGateway) MetricTypes(context.Context, uint64) ([]string, error) {
	return g.metricTypes, nil
}
func (g cannedGateway) MetricSeries(context.Context, uint64, string) (any, error) {
	return g.series, nil
}
func (g cannedGateway) ErrorGroups(context.Context, uint64) ([]any, error) {
	return g.errorGroups, nil
}

func testEngine(gw dash.Gateway, apps []dash.Application, opts dash.Options) *dash.Engine {
	return dash.NewEngine(gw, apps, opts, time.Now())
}

func TestJourneyPickThenBrowseTabs(t *testing.T) {
	gw := cannedGateway{
		endpoints:   map[string]any{"endpoints": []any{map[string]any{"name": "GET /cart"}}},
		insights:    map[string]any{"n_plus_one": []any{map[string]any{"title": "N+1 in cart"}}},
		metricTypes: []string{"throughput"},
		series:      []any{[]any{"2024-01-01T00:00:00Z", 5.0}},
	}
	apps := []dash.Application{{ID: 1, Name: "Shop"}, {ID: 2, Name: "Billing"}}
	m := NewModel(testEngine(gw, apps, dash.Options{}))

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))
	defer tm.Quit()

	time.Sleep(50 * time.Millisecond)

	// Filter the picker, wait out the debounce, open the app.
	for _, r := range "sh" {
		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	time.Sleep(400 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	time.Sleep(300 * time.Millisecond)

	// Cycle through every tab and drill into a metric.
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	time.Sleep(200 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	time.Sleep(200 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	time.Sleep(300 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})

	// Back to the picker, then quit.
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second))
	fm, ok := final.(Model)
	require.True(t, ok)
	assert.False(t, fm.engine.InApp())
}

func TestKeyEventMapping(t *testing.T) {
	ev, ok := keyEvent(tea.KeyMsg{Type: tea.KeyUp})
	require.True(t, ok)
	assert.Equal(t, dash.KeyUp, ev.Kind)

	ev, ok = keyEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.True(t, ok)
	assert.Equal(t, dash.KeyRune, ev.Kind)
	assert.Equal(t, 'x', ev.Rune)

	ev, ok = keyEvent(tea.KeyMsg{Type: tea.KeyEscape})
	require.True(t, ok)
	assert.Equal(t, dash.KeyEsc, ev.Kind)

	_, ok = keyEvent(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, ok)
}

func TestRenderPickerFrame(t *testing.T) {
	f := dash.Frame{
		Breadcrumb: []string{"Select app"},
		TabNames:   []string{"Endpoints", "Insights", "Metrics", "Errors"},
		Title:      " Select an app (Enter to open, type to search) ",
		Rows:       []string{"1  Shop", "2  Billing"},
		Selected:   1,
	}
	out := render(f, 80, 24, "", true, "footer")
	assert.Contains(t, out, "Select app")
	assert.Contains(t, out, "1  Shop")
	assert.Contains(t, out, "> 2  Billing")
	assert.NotContains(t, out, "Endpoints", "picker hides the tab strip")
}

func TestRenderAppFrameWithSpinner(t *testing.T) {
	f := dash.Frame{
		Breadcrumb: []string{"Shop", "Endpoints"},
		TabNames:   []string{"Endpoints", "Insights", "Metrics", "Errors"},
		ActiveTab:  0,
		ShowTabs:   true,
		Title:      " Endpoints ",
		Rows:       []string{"GET /cart"},
		Busy:       2,
	}
	out := render(f, 80, 24, "◐", true, "footer")
	assert.Contains(t, out, "App: Shop")
	assert.Contains(t, out, "◐ 2")
	assert.Contains(t, out, "Insights")
	assert.Contains(t, out, "> GET /cart")
}

func TestRenderDetailFrame(t *testing.T) {
	f := dash.Frame{
		Breadcrumb: []string{"Shop", "Endpoints", "GET /cart"},
		TabNames:   []string{"Endpoints", "Insights", "Metrics", "Errors"},
		ShowTabs:   true,
		Title:      " GET /cart ",
		Detail:     "  name  GET /cart\n  mean  12.5",
	}
	out := render(f, 80, 24, "", true, "footer")
	assert.Contains(t, out, "Endpoints > GET /cart")
	assert.Contains(t, out, "mean  12.5")
}

func TestRenderChart(t *testing.T) {
	series := []any{
		[]any{"2024-01-01T00:00:00Z", 10.0},
		[]any{"2024-01-01T06:00:00Z", 40.0},
		[]any{"2024-01-01T12:00:00Z", 20.0},
	}
	chart := dash.BuildChart(series, 40, "response_time", true)
	require.NotNil(t, chart)

	out := renderChart(chart, 40, 12)
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "latest: 20.00 ms")
	assert.Contains(t, out, "max: 40.00 ms")
	assert.Contains(t, out, "points: 3")

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 3)
}

func TestRenderEmptySeries(t *testing.T) {
	f := dash.Frame{
		Breadcrumb: []string{"Shop", "Metrics", "apdex"},
		TabNames:   []string{"Endpoints", "Insights", "Metrics", "Errors"},
		ShowTabs:   true,
		Title:      " apdex ",
		Series:     []any{},
		Metric:     "apdex",
	}
	out := render(f, 80, 24, "", true, "footer")
	assert.Contains(t, out, "No time-series points in response.")
}

func TestRenderRowsWindowsAroundCursor(t *testing.T) {
	rows := make([]string, 50)
	for i := range rows {
		rows[i] = strings.Repeat("r", 3)
	}
	rows[49] = "bottom"
	out := renderRows(rows, 49, 80, 10)
	assert.Contains(t, out, "> bottom")
	assert.LessOrEqual(t, len(strings.Split(out, "\n")), 10)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab…", truncateRunes("abcdef", 3))
	assert.Equal(t, "…", truncateRunes("abcdef", 1))
	assert.Equal(t, "", truncateRunes("abcdef", 0))
}
