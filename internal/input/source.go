// Package input turns the clock and the keyboard into one ordered stream of
// game actions.
package input

import (
	"context"

	"git.lost.host/meutraa/keyfall/internal/game"
	"golang.org/x/sync/errgroup"
)

// Source produces actions until its context is cancelled.
type Source interface {
	Run(ctx context.Context, out chan<- game.Action) error
}

// Fuse runs every source on its own goroutine, all writing to out. The first
// source to fail stops the others.
func Fuse(ctx context.Context, out chan<- game.Action, sources ...Source) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range sources {
		s := s
		g.Go(func() error {
			return s.Run(ctx, out)
		})
	}
	return g.Wait()
}

func send(ctx context.Context, out chan<- game.Action, a game.Action) bool {
	select {
	case out <- a:
		return true
	case <-ctx.Done():
		return false
	}
}
