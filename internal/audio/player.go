// Package audio sounds the notes the game asks for. Nothing in here is
// waited on by the game loop.
package audio

import (
	"math"
	"time"

	"git.lost.host/meutraa/keyfall/internal/game"
	"git.lost.host/meutraa/keyfall/internal/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const DefaultSampleRate = beep.SampleRate(44100)

// Output starts a streamer and returns immediately.
type Output func(s beep.Streamer)

type Player interface {
	Play(req game.PlayRequest)
}

// BeepPlayer plays requests through the system speaker.
type BeepPlayer struct {
	Bank       *Bank
	SampleRate beep.SampleRate

	out    Output
	logger *log.Logger
}

func NewBeepPlayer(sr beep.SampleRate, bank *Bank, logger *log.Logger) (*BeepPlayer, error) {
	if err := speaker.Init(sr, sr.N(time.Second/30)); nil != err {
		return nil, err
	}
	return &BeepPlayer{
		Bank:       bank,
		SampleRate: sr,
		out:        func(s beep.Streamer) { speaker.Play(s) },
		logger:     logger,
	}, nil
}

// Output returns the function instruments use to start sounds.
func (p *BeepPlayer) Output() Output {
	return p.out
}

func (p *BeepPlayer) Play(req game.PlayRequest) {
	if req.Garbled {
		p.logger.Debugf("garbled %v note, %+.3fs off", req.Instrument, req.Offset)
	}
	d := time.Duration(req.Duration * float64(time.Second))
	p.Bank.Get(req.Instrument).Play(p.out, req.Pitch, req.Velocity, d)
}

// Mute drops every request. Used when there is no audio device.
type Mute struct{}

func (Mute) Play(req game.PlayRequest) {}

// Frequency of a MIDI note number in Hz
func Frequency(pitch int) float64 {
	return 440 * math.Pow(2, float64(pitch-69)/12)
}

// withVelocity scales a streamer by MIDI velocity, 127 being unchanged.
func withVelocity(s beep.Streamer, velocity int) beep.Streamer {
	if velocity > 127 {
		velocity = 127
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(float64(velocity) / 127),
		Silent:   velocity <= 0,
	}
}
