package tui

import (
	"fmt"
	"strings"

	"github.com/scoutapm/scout-cli/internal/dash"
)

// renderChart draws a vertical bar chart in plain text: one column per
// sampled point, bars scaled 0-100 against the chart height, first and last
// time labels on the axis, and a stats line underneath.
func renderChart(c *dash.Chart, width, height int) string {
	chartH := height - 2
	if chartH < 3 {
		chartH = 3
	}

	gap := 1
	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		for i, bar := range c.Bars {
			if i > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			filled := bar.Scaled * chartH / 100
			if bar.Scaled > 0 && filled == 0 {
				filled = 1
			}
			if filled >= row {
				b.WriteString(barStyle().Render(strings.Repeat("█", c.BarWidth)))
			} else {
				b.WriteString(strings.Repeat(" ", c.BarWidth))
			}
		}
		b.WriteByte('\n')
	}

	chartW := len(c.Bars)*(c.BarWidth+gap) - gap
	if chartW < 0 {
		chartW = 0
	}
	b.WriteString(axisLine(c, chartW, width))
	b.WriteByte('\n')
	b.WriteString(mutedStyle().Render(metaLine(c)))
	return b.String()
}

// axisLine puts the oldest label on the left and the newest on the right.
func axisLine(c *dash.Chart, chartW, width int) string {
	if len(c.Bars) == 0 {
		return ""
	}
	first := c.Bars[0].Label
	last := c.Bars[len(c.Bars)-1].Label
	if chartW > width {
		chartW = width
	}
	pad := chartW - len([]rune(first)) - len([]rune(last))
	if len(c.Bars) == 1 || pad < 1 {
		return mutedStyle().Render(first)
	}
	return mutedStyle().Render(first + strings.Repeat(" ", pad) + last)
}

func metaLine(c *dash.Chart) string {
	suffix := ""
	if c.Unit != "" {
		suffix = " " + c.Unit
	}
	return fmt.Sprintf("latest: %.2f%s  min: %.2f%s  max: %.2f%s  points: %d",
		c.Latest, suffix, c.Min, suffix, c.Max, suffix, c.Total)
}
