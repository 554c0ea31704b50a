package replay

import (
	"fmt"

	"git.lost.host/meutraa/keyfall/internal/game"
)

// InputsCompact holds every occurrence of one action. Order is the position
// of each occurrence in the journal, so actions sharing a tick keep their
// order.
type InputsCompact struct {
	Action game.Action
	Ticks  []uint64
	Order  []int
}

func compactInputs(journal []game.Stamped) []InputsCompact {
	index := map[game.Action]int{}
	ins := []InputsCompact{}
	for pos, s := range journal {
		i, ok := index[s.Action]
		if !ok {
			i = len(ins)
			index[s.Action] = i
			ins = append(ins, InputsCompact{Action: s.Action, Ticks: []uint64{}, Order: []int{}})
		}
		ins[i].Ticks = append(ins[i].Ticks, s.Tick)
		ins[i].Order = append(ins[i].Order, pos)
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) ([]game.Stamped, error) {
	total := 0
	for _, in := range inputs {
		if len(in.Ticks) != len(in.Order) {
			return nil, fmt.Errorf("%v has %v ticks but %v positions", in.Action, len(in.Ticks), len(in.Order))
		}
		total += len(in.Ticks)
	}

	journal := make([]game.Stamped, total)
	seen := make([]bool, total)
	for _, in := range inputs {
		for i, pos := range in.Order {
			if pos < 0 || pos >= total || seen[pos] {
				return nil, fmt.Errorf("%v has invalid position %v", in.Action, pos)
			}
			seen[pos] = true
			journal[pos] = game.Stamped{Tick: in.Ticks[i], Action: in.Action}
		}
	}
	for i := 1; i < total; i++ {
		if journal[i].Tick < journal[i-1].Tick {
			return nil, fmt.Errorf("journal goes back in time at %v", i)
		}
	}
	return journal, nil
}
