package score

import (
	"math"

	"git.lost.host/meutraa/keyfall/internal/game"
	"git.lost.host/meutraa/keyfall/internal/rng"
)

type DefaultScorer struct {
	Eligibility   float64 // Seconds either side of a note start in which a press can take it
	Margin        float64 // Seconds either side of a note start that still count as on time
	PerfectPoints int
	LatePoints    int
}

func NewDefaultScorer() *DefaultScorer {
	return &DefaultScorer{
		Eligibility:   0.7,
		Margin:        0.3,
		PerfectPoints: 10,
		LatePoints:    5,
	}
}

// Distance is the signed error in seconds, negative when early.
// It is rounded to milliseconds so window boundaries compare exactly.
func (s *DefaultScorer) Distance(note game.NoteData, at float64) float64 {
	return game.RoundMs(at - note.Start)
}

func (s *DefaultScorer) Points(distance float64) int {
	if math.Abs(distance) < s.Margin {
		return s.PerfectPoints
	}
	return s.LatePoints
}

func (s *DefaultScorer) Request(note game.NoteData, at float64) game.PlayRequest {
	req := game.PlayRequest{
		Instrument: note.Instrument,
		Pitch:      note.Pitch,
		Velocity:   note.Velocity,
		Offset:     s.Distance(note, at),
		Duration:   note.Duration(),
	}
	if math.Abs(req.Offset) > s.Margin {
		req.Duration, req.Pitch = rng.Substitute(note)
		req.Garbled = true
	}
	return req
}

func (s *DefaultScorer) Hit(state game.State, lane int) (game.State, []game.PlayRequest) {
	closest := -1
	for i, token := range state.Tokens {
		if token.Lane != lane || !token.Hittable() {
			continue
		}
		if math.Abs(s.Distance(token.Note, state.Time)) > s.Eligibility {
			continue
		}
		// The oldest due note goes first, even if a later one is closer
		if closest == -1 || token.Note.Start < state.Tokens[closest].Note.Start {
			closest = i
		}
	}
	if closest == -1 {
		return state, nil
	}

	tokens := make([]game.Token, len(state.Tokens))
	copy(tokens, state.Tokens)
	hit := tokens[closest]
	hit.Consumed = true
	hit.Active = false
	tokens[closest] = hit

	next := state
	next.Tokens = tokens
	next.Score += s.Points(s.Distance(hit.Note, state.Time))
	return next, []game.PlayRequest{s.Request(hit.Note, state.Time)}
}
