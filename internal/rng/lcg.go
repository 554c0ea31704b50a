// Package rng is a stateless linear congruential generator. The caller owns
// the seed, so the same note always produces the same numbers.
package rng

import (
	"math"

	"git.lost.host/meutraa/keyfall/internal/game"
)

const (
	Modulus    int64 = 1 << 31
	Multiplier int64 = 1103515245
	Increment  int64 = 12345
)

// Hash returns the seed following the given one.
func Hash(seed int64) int64 {
	seed %= Modulus
	if seed < 0 {
		seed += Modulus
	}
	return (Multiplier*seed + Increment) % Modulus
}

// Scale maps a hash onto [0, 1].
func Scale(hash int64) float64 {
	return float64(hash) / float64(Modulus-1)
}

// Bounds of the made up notes played for a badly timed hit
const (
	MinDuration = 0.05
	MaxDuration = 0.5
	MinPitch    = 36
	MaxPitch    = 84
)

// Substitute invents a duration and pitch for a note that was played too far
// from its start. It depends only on the note's start and pitch.
func Substitute(n game.NoteData) (duration float64, pitch int) {
	h := Hash(int64(math.Round(n.Start * 1000)))
	duration = MinDuration + Scale(h)*(MaxDuration-MinDuration)

	h = Hash(h + int64(n.Pitch))
	pitch = MinPitch + int(Scale(h)*float64(MaxPitch-MinPitch))
	if pitch >= MaxPitch {
		pitch = MaxPitch - 1
	}
	return game.RoundMs(duration), pitch
}
