package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

type Wave func(phase float64) float64

func Sine(p float64) float64 {
	return math.Sin(p)
}

// Piano is a sine with a couple of quieter harmonics
func Piano(p float64) float64 {
	return (math.Sin(p) + math.Sin(p*2)*0.5 + math.Sin(p*3)*0.2) / 1.7
}

func Square(p float64) float64 {
	if math.Sin(p) >= 0 {
		return 1
	}
	return -1
}

// Oscillator is a synthesised instrument, used when nothing better is loaded.
type Oscillator struct {
	Wave       Wave
	Gain       float64
	SampleRate beep.SampleRate
	Release    time.Duration
}

func NewOscillator(wave Wave, sr beep.SampleRate) *Oscillator {
	return &Oscillator{
		Wave:       wave,
		Gain:       0.25,
		SampleRate: sr,
		Release:    80 * time.Millisecond,
	}
}

func (o *Oscillator) Voice(pitch, velocity int, d time.Duration) beep.Streamer {
	return withVelocity(&voice{
		wave:    o.Wave,
		gain:    o.Gain,
		step:    Frequency(pitch) * 2 * math.Pi / float64(o.SampleRate),
		attack:  o.SampleRate.N(5 * time.Millisecond),
		sustain: o.SampleRate.N(d),
		release: o.SampleRate.N(o.Release),
	}, velocity)
}

func (o *Oscillator) Play(out Output, pitch, velocity int, d time.Duration) {
	out(o.Voice(pitch, velocity, d))
}

type voice struct {
	wave  Wave
	gain  float64
	phase float64
	step  float64

	pos                      int
	attack, sustain, release int
}

func (v *voice) envelope() float64 {
	switch {
	case v.pos < v.attack:
		return float64(v.pos) / float64(v.attack)
	case v.pos < v.sustain:
		return 1
	default:
		return 1 - float64(v.pos-v.sustain)/float64(v.release)
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	end := v.sustain + v.release
	for i := range samples {
		if v.pos >= end {
			return i, i > 0
		}
		s := v.wave(v.phase) * v.gain * v.envelope()
		samples[i][0] = s
		samples[i][1] = s

		v.pos++
		v.phase += v.step
		if v.phase >= 2*math.Pi {
			v.phase -= 2 * math.Pi
		}
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }
