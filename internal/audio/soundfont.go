package audio

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

const (
	drumChannel = 9
	nChannels   = 16
)

var ErrNoChannels = errors.New("all midi channels are in use")

// synthesizer is the part of meltysynth.Synthesizer used here.
type synthesizer interface {
	ProcessMidiMessage(channel int32, command int32, data1, data2 int32)
	NoteOn(channel, key, vel int32)
	NoteOff(channel, key int32)
	Render(left, right []float32)
}

// SoundFont renders notes with a single synthesizer that streams for as long
// as the game runs. Each instrument gets its own MIDI channel.
type SoundFont struct {
	mu          sync.Mutex
	synth       synthesizer
	left, right []float32
	next        int32
	after       func(d time.Duration, f func())
}

func NewSoundFont(r io.Reader, sr beep.SampleRate) (*SoundFont, error) {
	sf, err := meltysynth.NewSoundFont(r)
	if nil != err {
		return nil, err
	}
	settings := meltysynth.NewSynthesizerSettings(int32(sr))
	synth, err := meltysynth.NewSynthesizer(sf, settings)
	if nil != err {
		return nil, err
	}
	return newSoundFont(synth), nil
}

func newSoundFont(synth synthesizer) *SoundFont {
	return &SoundFont{
		synth: synth,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Instrument binds a General MIDI program to a free channel. Program -1
// selects the percussion channel.
func (s *SoundFont) Instrument(program int) (Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if program < 0 {
		return &sfChannel{sf: s, ch: drumChannel}, nil
	}
	if s.next == drumChannel {
		s.next++
	}
	if s.next >= nChannels {
		return nil, ErrNoChannels
	}
	ch := s.next
	s.next++
	s.synth.ProcessMidiMessage(ch, 0xC0, int32(program), 0) // program change
	return &sfChannel{sf: s, ch: ch}, nil
}

func (s *SoundFont) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cap(s.left) < len(samples) {
		s.left = make([]float32, len(samples))
		s.right = make([]float32, len(samples))
	}
	left, right := s.left[:len(samples)], s.right[:len(samples)]
	s.synth.Render(left, right)
	for i := range samples {
		samples[i][0] = float64(left[i])
		samples[i][1] = float64(right[i])
	}
	return len(samples), true
}

func (s *SoundFont) Err() error { return nil }

func (s *SoundFont) noteOn(ch int32, pitch, velocity int) {
	s.mu.Lock()
	s.synth.NoteOn(ch, int32(pitch), int32(velocity))
	s.mu.Unlock()
}

func (s *SoundFont) noteOff(ch int32, pitch int) {
	s.mu.Lock()
	s.synth.NoteOff(ch, int32(pitch))
	s.mu.Unlock()
}

type sfChannel struct {
	sf *SoundFont
	ch int32
}

// Play ignores out, the synthesizer is already streaming.
func (c *sfChannel) Play(out Output, pitch, velocity int, d time.Duration) {
	c.sf.noteOn(c.ch, pitch, velocity)
	c.sf.after(d, func() { c.sf.noteOff(c.ch, pitch) })
}
