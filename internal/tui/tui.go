// Package tui draws the dashboard. All state lives in dash.Engine; this
// package only translates key events, drives the poll clock, and renders
// frames.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scoutapm/scout-cli/internal/dash"
)

type tickMsg struct{}

const pollInterval = 100 * time.Millisecond

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

type Model struct {
	engine *dash.Engine

	width  int
	height int

	help help.Model
	keys keyMap

	started time.Time
}

func Run(engine *dash.Engine) error {
	p := tea.NewProgram(NewModel(engine), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func NewModel(engine *dash.Engine) Model {
	return Model{
		engine:  engine,
		help:    help.New(),
		keys:    defaultKeyMap(),
		started: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.engine.Tick(time.Now())
		return m, tea.Tick(pollInterval, func(time.Time) tea.Msg { return tickMsg{} })

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		ev, ok := keyEvent(msg)
		if !ok {
			return m, nil
		}
		if m.engine.HandleKey(ev, time.Now()) {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// keyEvent maps a terminal keystroke onto the engine's input alphabet. The
// engine itself decides what each key means in the current state.
func keyEvent(msg tea.KeyMsg) (dash.KeyEvent, bool) {
	switch msg.String() {
	case "up":
		return dash.KeyEvent{Kind: dash.KeyUp}, true
	case "down":
		return dash.KeyEvent{Kind: dash.KeyDown}, true
	case "left":
		return dash.KeyEvent{Kind: dash.KeyLeft}, true
	case "right":
		return dash.KeyEvent{Kind: dash.KeyRight}, true
	case "enter":
		return dash.KeyEvent{Kind: dash.KeyEnter}, true
	case "esc":
		return dash.KeyEvent{Kind: dash.KeyEsc}, true
	case "backspace":
		return dash.KeyEvent{Kind: dash.KeyBackspace}, true
	case " ":
		return dash.KeyEvent{Kind: dash.KeyRune, Rune: ' '}, true
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return dash.KeyEvent{Kind: dash.KeyRune, Rune: msg.Runes[0]}, true
	}
	return dash.KeyEvent{}, false
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}
	f := m.engine.Frame()
	spinner := ""
	if f.Busy > 0 {
		idx := int(time.Since(m.started).Milliseconds()/140) % len(spinnerFrames)
		spinner = spinnerFrames[idx]
	}
	footer := footerStyle().Render(m.help.View(m.keys))
	return render(f, m.width, m.height, spinner, m.engine.UseUTC(), footer)
}
