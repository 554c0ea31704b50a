package input

import (
	"time"

	"git.lost.host/meutraa/keyfall/internal/game"
)

// RepeatFilter drops key auto-repeat on terminals, which never report key
// releases. An action counts as a new press only if the same action has not
// been seen for Window. A held key keeps itself suppressed because every
// repeat moves the window forward.
type RepeatFilter struct {
	Window time.Duration

	now  func() time.Time
	last map[game.Action]time.Time
}

func NewRepeatFilter(window time.Duration) *RepeatFilter {
	return &RepeatFilter{
		Window: window,
		now:    time.Now,
		last:   map[game.Action]time.Time{},
	}
}

func (f *RepeatFilter) Accept(a game.Action) bool {
	t := f.now()
	last, seen := f.last[a]
	f.last[a] = t
	return !seen || t.Sub(last) >= f.Window
}
