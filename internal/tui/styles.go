package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Kept readable on both light and dark terminal backgrounds.
var (
	accentColor = lipgloss.AdaptiveColor{Light: "#006d77", Dark: "#5ad4e6"}
	mutedColor  = lipgloss.Color("8")
	busyColor   = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#e3b341"}
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentColor)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(mutedColor).Faint(true)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(mutedColor).Faint(true)
}

func busyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(busyColor)
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Underline(true)
}

func tabStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentColor)
}

func activeTabStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Reverse(true)
}

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentColor)
}

func footerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(mutedColor).Faint(true)
}

func rule(width int) string {
	if width <= 0 {
		width = 10
	}
	return mutedStyle().Render(strings.Repeat("-", width))
}
