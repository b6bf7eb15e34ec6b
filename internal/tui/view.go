package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scoutapm/scout-cli/internal/dash"
)

// render lays out one frame as header, optional tab strip, body, footer.
// Pure so tests can call it with a fabricated frame.
func render(f dash.Frame, width, height int, spinner string, useUTC bool, footer string) string {
	var parts []string

	parts = append(parts, renderHeader(f, width, spinner))
	if f.ShowTabs {
		parts = append(parts, renderTabs(f))
	}

	used := 0
	for _, p := range parts {
		used += lipgloss.Height(p)
	}
	bodyH := height - used - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	parts = append(parts, renderBody(f, width, bodyH, useUTC), footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(f dash.Frame, width int, spinner string) string {
	var lines []string
	if len(f.Breadcrumb) >= 2 {
		lines = append(lines,
			headerStyle().Render("App: "+f.Breadcrumb[0]),
			headerStyle().Render(strings.Join(f.Breadcrumb[1:], " > ")))
	} else {
		title := "Select app"
		if len(f.Breadcrumb) == 1 {
			title = f.Breadcrumb[0]
		}
		lines = append(lines, headerStyle().Render(title))
	}

	if spinner != "" {
		indicator := busyStyle().Render(fmt.Sprintf("%s %d", spinner, f.Busy))
		pad := width - lipgloss.Width(lines[0]) - lipgloss.Width(indicator)
		if pad > 0 {
			lines[0] += strings.Repeat(" ", pad) + indicator
		}
	}
	lines = append(lines, rule(width))
	return strings.Join(lines, "\n")
}

func renderTabs(f dash.Frame) string {
	cells := make([]string, 0, len(f.TabNames))
	for i, name := range f.TabNames {
		label := " " + name + " "
		if i == f.ActiveTab {
			cells = append(cells, activeTabStyle().Render(label))
		} else {
			cells = append(cells, tabStyle().Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderBody(f dash.Frame, width, height int, useUTC bool) string {
	title := titleStyle().Render(strings.TrimSpace(f.Title))

	var content string
	switch {
	case f.Series != nil:
		content = renderSeries(f.Series, f.Metric, width, height-1, useUTC)
	case f.Detail != "":
		content = f.Detail
	case len(f.Rows) == 0:
		content = mutedStyle().Render("No data or select an item and press Enter.")
	default:
		content = renderRows(f.Rows, f.Selected, width, height-1)
	}

	body := title + "\n" + content
	return lipgloss.NewStyle().Width(width).Height(height).Render(body)
}

func renderRows(rows []string, selected, width, height int) string {
	// Keep the cursor visible by windowing the rows.
	start := 0
	if height > 0 && selected >= height {
		start = selected - height + 1
	}
	end := len(rows)
	if height > 0 && start+height < end {
		end = start + height
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteByte('\n')
		}
		prefix := "  "
		if i == selected {
			prefix = "> "
		}
		line := truncateRunes(prefix+rows[i], width)
		if i == selected {
			line = selectedStyle().Render(line)
		}
		b.WriteString(line)
	}
	return b.String()
}

func renderSeries(series any, metricType string, width, height int, useUTC bool) string {
	chart := dash.BuildChart(series, width, metricType, useUTC)
	if chart == nil {
		return mutedStyle().Render("No time-series points in response.")
	}
	return renderChart(chart, width, height)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
