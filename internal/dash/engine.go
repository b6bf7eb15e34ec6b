package dash

import (
	"fmt"
	"time"
)

// KeyKind classifies an input event after the terminal layer has decoded it.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeyBackspace
)

// KeyEvent is one keystroke. Rune is set only for KeyRune.
type KeyEvent struct {
	Kind KeyKind
	Rune rune
}

// Drill is the active detail overlay: preformatted text, or a raw metric
// series rendered to a chart at draw time.
type Drill struct {
	Label  string
	Text   string
	Series any
	Metric string
}

// Options configures a new Engine.
type Options struct {
	App          string // resolve by id or name and skip the picker
	View         View
	RefreshEvery time.Duration
	UseUTC       bool
}

// Engine owns all dashboard session state exclusively. It is driven from a
// single goroutine: HandleKey for input, Tick for the poll clock, Frame for
// drawing. Background fetches run elsewhere and only report back through
// the Loader.
type Engine struct {
	apps   []Application
	loader *Loader

	inApp   bool
	appID   uint64
	appName string
	view    View

	appSelected int
	selected    int

	cache     map[CacheKey]Dataset
	loaded    map[CacheKey]bool
	tabErrors map[CacheKey]string

	drill  *Drill
	search Search

	refreshEvery time.Duration
	lastRefresh  time.Time

	useUTC bool
}

// NewEngine builds an engine over an already-fetched application list. When
// opts.App resolves, the picker is skipped and the initial tab fetch is
// dispatched immediately.
func NewEngine(gw Gateway, apps []Application, opts Options, now time.Time) *Engine {
	e := &Engine{
		apps:         apps,
		loader:       NewLoader(gw),
		view:         opts.View,
		cache:        make(map[CacheKey]Dataset),
		loaded:       make(map[CacheKey]bool),
		tabErrors:    make(map[CacheKey]string),
		refreshEvery: opts.RefreshEvery,
		lastRefresh:  now,
		useUTC:       opts.UseUTC,
	}
	if i, ok := ResolveApp(apps, opts.App); ok {
		e.inApp = true
		e.appID = apps[i].ID
		e.appName = apps[i].Name
		e.appSelected = i
		e.loader.Start(CacheKey{AppID: e.appID, View: e.view})
	}
	return e
}

// UseUTC reports the configured display timezone.
func (e *Engine) UseUTC() bool { return e.useUTC }

// Loader exposes the task manager, for the terminal layer's busy indicator.
func (e *Engine) Loader() *Loader { return e.loader }

func (e *Engine) currentKey() CacheKey {
	return CacheKey{AppID: e.appID, View: e.view}
}

func (e *Engine) currentData() Dataset {
	if d, ok := e.cache[e.currentKey()]; ok {
		return d
	}
	return Dataset{View: e.view}
}

func (e *Engine) startIfNeeded(key CacheKey) {
	if !e.loaded[key] && !e.loader.Pending(key) {
		e.loader.Start(key)
	}
}

func clampIndex(i, length int) int {
	if length <= 0 {
		return 0
	}
	if i > length-1 {
		return length - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

// HandleKey applies one keystroke. Returns true when the loop should quit.
func (e *Engine) HandleKey(ev KeyEvent, now time.Time) bool {
	if ev.Kind == KeyRune {
		switch ev.Rune {
		case 'q':
			return true
		case 'h':
			ev = KeyEvent{Kind: KeyLeft}
		case 'j':
			ev = KeyEvent{Kind: KeyDown}
		case 'k':
			ev = KeyEvent{Kind: KeyUp}
		case 'l':
			ev = KeyEvent{Kind: KeyRight}
		}
	}

	switch ev.Kind {
	case KeyEsc:
		if e.drill != nil {
			e.drill = nil
		} else if e.inApp {
			e.leaveApp()
		}

	case KeyLeft:
		if e.drill != nil {
			e.drill = nil
		} else if e.inApp {
			e.switchView(e.view.Prev())
		}

	case KeyRight:
		if e.drill != nil {
			e.drill = nil
		} else if e.inApp {
			e.switchView(e.view.Next())
		}

	case KeyUp:
		if e.drill == nil {
			if !e.inApp {
				e.appSelected = clampIndex(e.appSelected-1, len(e.filteredApps()))
			} else {
				e.selected = clampIndex(e.selected-1, e.currentData().Len())
			}
		}

	case KeyDown:
		if e.drill == nil {
			if !e.inApp {
				e.appSelected = clampIndex(e.appSelected+1, len(e.filteredApps()))
			} else {
				e.selected = clampIndex(e.selected+1, e.currentData().Len())
			}
		}

	case KeyEnter:
		e.confirm()

	case KeyBackspace:
		if !e.inApp {
			e.search.Backspace(now)
		}

	case KeyRune:
		if !e.inApp {
			e.search.Type(ev.Rune, now)
		}
	}
	return false
}

func (e *Engine) filteredApps() []int {
	return FilterApps(e.apps, e.search.Committed)
}

func (e *Engine) switchView(v View) {
	e.view = v
	e.startIfNeeded(e.currentKey())
	e.selected = 0
}

func (e *Engine) confirm() {
	if !e.inApp {
		indices := e.filteredApps()
		if e.appSelected >= len(indices) {
			return
		}
		app := e.apps[indices[e.appSelected]]
		e.enterApp(app)
		return
	}
	if e.drill != nil {
		e.drill = nil
		return
	}
	data := e.currentData()
	if e.view == ViewMetrics {
		mt, ok := data.MetricType(e.selected)
		if !ok {
			return
		}
		e.drill = &Drill{
			Label:  mt,
			Metric: mt,
			Text:   fmt.Sprintf("Loading metric %s…", mt),
		}
		e.loader.StartMetric(e.appID, mt)
		return
	}
	if item, ok := data.Item(e.selected); ok {
		e.drill = &Drill{Label: item.Label, Text: FormatRecord(item.Record)}
	}
}

func (e *Engine) enterApp(app Application) {
	e.loader.CancelAll()
	e.clearAppState()
	e.inApp = true
	e.appID = app.ID
	e.appName = app.Name
	e.view = ViewEndpoints
	e.selected = 0
	e.startIfNeeded(e.currentKey())
}

// leaveApp returns to the picker, dropping every per-application artifact:
// cache entries, pending fetches, errors, cursor, and the search query.
func (e *Engine) leaveApp() {
	e.loader.CancelAll()
	e.clearAppState()
	e.inApp = false
	e.appID = 0
	e.appName = ""
	e.view = ViewEndpoints
	e.selected = 0
	e.drill = nil
	e.search.Reset()
}

func (e *Engine) clearAppState() {
	e.cache = make(map[CacheKey]Dataset)
	e.loaded = make(map[CacheKey]bool)
	e.tabErrors = make(map[CacheKey]string)
	e.drill = nil
}

// Tick advances the engine one poll interval: apply finished fetches,
// settle the search debounce, kick the safety-net load, and fire the
// refresh timer.
func (e *Engine) Tick(now time.Time) {
	for _, r := range e.loader.Poll() {
		if !e.inApp || r.Key.AppID != e.appID {
			continue // stale, the user navigated away
		}
		if r.Err != nil {
			e.tabErrors[r.Key] = r.Err.Error()
			continue
		}
		e.cache[r.Key] = r.Data
		e.loaded[r.Key] = true
		delete(e.tabErrors, r.Key)
		if r.Key.View == e.view {
			e.selected = clampIndex(e.selected, r.Data.Len())
		}
	}

	if mr, ok := e.loader.PollMetric(); ok {
		if mr.Err != nil {
			e.drill = &Drill{
				Label:  mr.Metric,
				Metric: mr.Metric,
				Text:   fmt.Sprintf("Error: %s", mr.Err),
			}
		} else {
			e.drill = &Drill{Label: mr.Metric, Metric: mr.Metric, Series: mr.Series}
		}
	}

	if !e.inApp && e.search.Settle(now) {
		e.appSelected = clampIndex(e.appSelected, len(e.filteredApps()))
	}

	if e.inApp {
		// Safety net: make sure the visible tab has a load under way. A tab
		// sitting on an error is left alone until navigation or the refresh
		// timer retries it.
		_, _, metricBusy := e.loader.MetricPending()
		if _, hasErr := e.tabErrors[e.currentKey()]; !hasErr && !metricBusy {
			e.startIfNeeded(e.currentKey())
		}
		if e.refreshEvery > 0 && now.Sub(e.lastRefresh) >= e.refreshEvery {
			e.lastRefresh = now
			key := e.currentKey()
			if !e.loader.Pending(key) {
				e.loader.Start(key)
			}
		}
	}
}

// InApp reports whether an application is selected (picker otherwise).
func (e *Engine) InApp() bool { return e.inApp }

// CurrentApp returns the selected application's id and name.
func (e *Engine) CurrentApp() (uint64, string) { return e.appID, e.appName }

// CurrentView returns the active tab.
func (e *Engine) CurrentView() View { return e.view }
