package score

import (
	"git.lost.host/meutraa/keyfall/internal/game"
)

type Scorer interface {
	// Resolve a key press in a lane against the falling tokens
	Hit(state game.State, lane int) (game.State, []game.PlayRequest)

	// Build the audio request for a note sounding at the given time
	Request(note game.NoteData, at float64) game.PlayRequest

	Points(distance float64) int

	Distance(note game.NoteData, at float64) float64
}
