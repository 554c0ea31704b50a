package input

import (
	"context"
	"time"

	"git.lost.host/meutraa/keyfall/internal/game"
)

// Clock emits a tick every period, paused or not.
type Clock struct {
	Period time.Duration
}

func (c *Clock) Run(ctx context.Context, out chan<- game.Action) error {
	ticker := time.NewTicker(c.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !send(ctx, out, game.ActionTick) {
				return nil
			}
		}
	}
}
