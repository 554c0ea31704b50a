// Package replay records the inputs of a game and plays them back.
package replay

import (
	"git.lost.host/meutraa/keyfall/internal/engine"
	"git.lost.host/meutraa/keyfall/internal/game"
)

// Replay folds a recorded journal into the state the recording started from.
// ticks is the total number of tick actions of the recording. The result is
// the state the recorded loop ended with.
func Replay(s game.State, journal []game.Stamped, ticks uint64, cfg engine.Config) game.State {
	var done uint64
	for _, entry := range journal {
		for ; done < entry.Tick; done++ {
			s = engine.Reduce(s, game.ActionTick, cfg).State
		}
		s = engine.Reduce(s, entry.Action, cfg).State
	}
	for ; done < ticks; done++ {
		s = engine.Reduce(s, game.ActionTick, cfg).State
	}
	return s
}
