package game

import "math"

type NoteData struct {
	ID         int    // Row index in the score, used as the note identity
	UserPlayed bool   // Struck by the player rather than played automatically
	Instrument string // Resolved to a sound outside the core
	Velocity   int    // 0-127
	Pitch      int    // MIDI note number
	Start      float64
	End        float64

	// Set once, when the engine decides when the note sounded
	Played   bool
	PlayedAt float64
}

func (n NoteData) Duration() float64 {
	return n.End - n.Start
}

// MarkPlayed returns a copy of the note stamped with the given time.
// A note that has already been played is returned unchanged.
func (n NoteData) MarkPlayed(at float64) NoteData {
	if n.Played {
		return n
	}
	n.Played = true
	n.PlayedAt = at
	return n
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// RoundMs rounds seconds to millisecond precision.
func RoundMs(v float64) float64 {
	return math.Round(v*1000) / 1000
}
