package engine

import (
	"context"

	"git.lost.host/meutraa/keyfall/internal/game"
	"git.lost.host/meutraa/keyfall/internal/log"
)

// Presenter draws state snapshots. It must not call back into the loop.
type Presenter interface {
	Render(state game.State)
}

// Player sounds notes. Play must return without waiting for the sound.
type Player interface {
	Play(req game.PlayRequest)
}

// Loop is the single consumer of the action stream and the only owner of the
// game state.
type Loop struct {
	cfg       Config
	state     game.State
	presenter Presenter
	player    Player
	logger    *log.Logger

	ticks   uint64 // Tick actions received, paused or not
	journal []game.Stamped
}

func NewLoop(state game.State, cfg Config, presenter Presenter, player Player, logger *log.Logger) *Loop {
	return &Loop{
		cfg:       cfg,
		state:     state,
		presenter: presenter,
		player:    player,
		logger:    logger,
		journal:   []game.Stamped{},
	}
}

// Run processes actions one at a time until the context is cancelled or the
// channel is closed.
func (l *Loop) Run(ctx context.Context, actions <-chan game.Action) error {
	l.presenter.Render(l.state)
	for {
		select {
		case <-ctx.Done():
			return nil
		case a, ok := <-actions:
			if !ok {
				return nil
			}
			l.Step(a)
		}
	}
}

// Step applies one action, hands out its side effects and renders the result.
func (l *Loop) Step(a game.Action) game.State {
	if a == game.ActionTick {
		l.ticks++
	} else {
		l.journal = append(l.journal, game.Stamped{Tick: l.ticks, Action: a})
	}

	prev := l.state
	res := Reduce(prev, a, l.cfg)
	l.state = res.State

	if res.State.Paused != prev.Paused {
		l.logger.Infof("paused=%v at %.2fs", res.State.Paused, res.State.Time)
	}
	if res.State.Ended && !prev.Ended {
		l.logger.Infof("song ended at %.2fs with score %v", res.State.Time, res.State.Score)
	}
	if res.State.Score != prev.Score {
		l.logger.Debugf("%v scored %v at %.2fs", a, res.State.Score-prev.Score, res.State.Time)
	}

	for _, p := range res.Plays {
		l.player.Play(p)
	}
	l.presenter.Render(l.state)
	return l.state
}

func (l *Loop) State() game.State {
	return l.state
}

// Journal returns every non tick action with the tick count it arrived at.
func (l *Loop) Journal() []game.Stamped {
	return l.journal
}

func (l *Loop) Ticks() uint64 {
	return l.ticks
}
