package input

import (
	"context"
	"fmt"

	"git.lost.host/meutraa/keyfall/internal/game"
	"github.com/eiannone/keyboard"
)

// TerminalKeys reads keys from the controlling terminal.
type TerminalKeys struct {
	Lanes  []rune // One key per lane, in lane order
	Filter *RepeatFilter
	OnQuit func() // Called for q and ctrl-c
}

// Map converts a key event into an action. Escape toggles pause.
func (k *TerminalKeys) Map(ev keyboard.KeyEvent) (game.Action, bool) {
	if ev.Key == keyboard.KeyEsc {
		return game.ActionPause, true
	}
	if ev.Key != 0 {
		return "", false
	}
	for i, r := range k.Lanes {
		if i < game.NLanes && ev.Rune == r {
			return game.LaneAction(i), true
		}
	}
	return "", false
}

func (k *TerminalKeys) quit(ev keyboard.KeyEvent) bool {
	return ev.Key == keyboard.KeyCtrlC || (ev.Key == 0 && ev.Rune == 'q')
}

func (k *TerminalKeys) Run(ctx context.Context, out chan<- game.Action) error {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer keyboard.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if nil != ev.Err {
				return fmt.Errorf("unable to read keyboard: %w", ev.Err)
			}
			if k.quit(ev) {
				if nil != k.OnQuit {
					k.OnQuit()
				}
				continue
			}
			a, ok := k.Map(ev)
			if !ok {
				continue
			}
			if nil != k.Filter && !k.Filter.Accept(a) {
				continue
			}
			if !send(ctx, out, a) {
				return nil
			}
		}
	}
}
