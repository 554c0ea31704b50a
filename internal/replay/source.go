package replay

import (
	"context"
	"time"

	"git.lost.host/meutraa/keyfall/internal/game"
)

// Source plays a recorded session back as an action stream, one tick every
// Period with the recorded actions in between.
type Source struct {
	Session Session
	Period  time.Duration
}

func (s *Source) Run(ctx context.Context, out chan<- game.Action) error {
	ticker := time.NewTicker(s.Period)
	defer ticker.Stop()

	send := func(a game.Action) bool {
		select {
		case out <- a:
			return true
		case <-ctx.Done():
			return false
		}
	}

	journal := s.Session.Journal
	next := 0
	for done := uint64(0); done < s.Session.Ticks; done++ {
		for ; next < len(journal) && journal[next].Tick <= done; next++ {
			if !send(journal[next].Action) {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if !send(game.ActionTick) {
			return nil
		}
	}
	for ; next < len(journal); next++ {
		if !send(journal[next].Action) {
			return nil
		}
	}
	return nil
}
