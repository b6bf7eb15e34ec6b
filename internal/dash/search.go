package dash

import "time"

// SearchDebounce is how long the picker query must sit idle before it is
// committed and the filtered list recomputed.
const SearchDebounce = 200 * time.Millisecond

// Search is the picker's debounced filter state. Pending tracks every
// keystroke; Committed only catches up once typing pauses.
type Search struct {
	Pending   string
	Committed string

	lastTyped time.Time
	typed     bool
}

func (s *Search) Type(r rune, now time.Time) {
	s.Pending += string(r)
	s.lastTyped = now
	s.typed = true
}

func (s *Search) Backspace(now time.Time) {
	if s.Pending != "" {
		runes := []rune(s.Pending)
		s.Pending = string(runes[:len(runes)-1])
	}
	s.lastTyped = now
	s.typed = true
}

// Settle commits the pending query once it has been idle for the debounce
// interval. Returns true when Committed changed this call.
func (s *Search) Settle(now time.Time) bool {
	if s.Pending == s.Committed {
		return false
	}
	if s.typed && now.Sub(s.lastTyped) < SearchDebounce {
		return false
	}
	s.Committed = s.Pending
	return true
}

func (s *Search) Reset() {
	*s = Search{}
}
