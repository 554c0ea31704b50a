package engine

import (
	"fmt"

	"git.lost.host/meutraa/keyfall/internal/game"
	"git.lost.host/meutraa/keyfall/internal/score"
)

type Config struct {
	TickPeriod  float64 // Simulated seconds per tick
	LeadTime    float64 // Seconds a token is on screen before its note starts
	StartOffset float64 // The game starts at minus this many seconds
	PathLength  int     // Ticks a token falls before it leaves the screen
	Scorer      score.Scorer
}

func DefaultConfig() Config {
	return Config{
		TickPeriod:  0.01,
		LeadTime:    3.5,
		StartOffset: 3.5,
		// A token reaches the hit bar after 350 ticks and leaves once it
		// can no longer be taken, 0.7s later
		PathLength: 420,
		Scorer:     score.NewDefaultScorer(),
	}
}

// NewState builds the state a game starts from. A score without notes has no
// final note and cannot be played.
func NewState(notes []game.NoteData, cfg Config) (game.State, error) {
	final, err := game.FinalNote(notes)
	if nil != err {
		return game.State{}, fmt.Errorf("unable to find final note: %w", err)
	}
	user, auto := game.Partition(notes)
	return game.State{
		Tokens:    []game.Token{},
		AutoNotes: auto,
		UserNotes: user,
		Time:      game.RoundMs(-cfg.StartOffset),
		FinalNote: final,
	}, nil
}
