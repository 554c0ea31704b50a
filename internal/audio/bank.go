package audio

import (
	"sort"
	"sync"
	"time"
)

// Instrument sounds a note through the output.
type Instrument interface {
	Play(out Output, pitch, velocity int, d time.Duration)
}

// Bank resolves the instrument names used in scores.
type Bank struct {
	mu          sync.RWMutex
	instruments map[string]Instrument
	fallback    Instrument
}

func NewBank(fallback Instrument) *Bank {
	return &Bank{
		instruments: map[string]Instrument{},
		fallback:    fallback,
	}
}

func (b *Bank) Register(id string, inst Instrument) {
	b.mu.Lock()
	b.instruments[id] = inst
	b.mu.Unlock()
}

// Get returns the named instrument, or the fallback for unknown names.
func (b *Bank) Get(id string) Instrument {
	b.mu.RLock()
	inst, ok := b.instruments[id]
	b.mu.RUnlock()
	if !ok {
		return b.fallback
	}
	return inst
}

func (b *Bank) IDs() []string {
	b.mu.RLock()
	ids := make([]string, 0, len(b.instruments))
	for id := range b.instruments {
		ids = append(ids, id)
	}
	b.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
