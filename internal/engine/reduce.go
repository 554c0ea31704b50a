package engine

import (
	"git.lost.host/meutraa/keyfall/internal/game"
)

// Result is the outcome of one action: the next state and the notes that
// should sound because of it.
type Result struct {
	State game.State
	Plays []game.PlayRequest
}

// Reduce folds one action into the state. Pausing freezes everything, ticks
// included, and ending the game stops nothing.
func Reduce(s game.State, a game.Action, cfg Config) Result {
	if a == game.ActionPause {
		s.Paused = !s.Paused
		return Result{State: s}
	}
	if s.Paused {
		return Result{State: s}
	}
	if a == game.ActionTick {
		next, plays := Tick(s, cfg)
		return Result{State: next, Plays: plays}
	}
	if lane, ok := a.Lane(); ok {
		next, plays := cfg.Scorer.Hit(s, lane)
		return Result{State: next, Plays: plays}
	}
	return Result{State: s}
}
