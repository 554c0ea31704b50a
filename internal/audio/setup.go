package audio

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"git.lost.host/meutraa/keyfall/internal/log"
	"github.com/faiface/beep"
)

type Options struct {
	SampleRate beep.SampleRate
	SoundFont  string         // Path to an .sf2 file, optional
	Programs   map[string]int // Instrument name to General MIDI program
	Samples    string         // Directory of .wav files, optional
}

// BuildBank loads every configured sound source. Samples win over SoundFont
// programs of the same name, and anything unnamed falls back to a synthesised
// piano, or program 0 when a SoundFont is loaded. The returned SoundFont, if
// any, has to be started on the output.
func BuildBank(opts Options, logger *log.Logger) (*Bank, *SoundFont, error) {
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	bank := NewBank(NewOscillator(Piano, opts.SampleRate))

	var sf *SoundFont
	if opts.SoundFont != "" {
		f, err := os.Open(opts.SoundFont)
		if nil != err {
			return nil, nil, err
		}
		sf, err = NewSoundFont(bufio.NewReader(f), opts.SampleRate)
		f.Close()
		if nil != err {
			return nil, nil, fmt.Errorf("unable to load soundfont %v: %w", opts.SoundFont, err)
		}
		if err := registerPrograms(bank, sf, opts.Programs); nil != err {
			return nil, nil, err
		}
		logger.Infof("loaded soundfont %v", opts.SoundFont)
	}

	if opts.Samples != "" {
		samples, err := LoadSamples(opts.Samples, opts.SampleRate, logger)
		if nil != err {
			return nil, nil, fmt.Errorf("unable to load samples: %w", err)
		}
		for id, s := range samples {
			bank.Register(id, s)
		}
		logger.Infof("loaded %v samples from %v", len(samples), opts.Samples)
	}
	return bank, sf, nil
}

func registerPrograms(bank *Bank, sf *SoundFont, programs map[string]int) error {
	piano, err := sf.Instrument(0)
	if nil != err {
		return err
	}
	bank.fallback = piano

	// Sorted so channels are assigned the same way every run
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		inst, err := sf.Instrument(programs[name])
		if nil != err {
			return fmt.Errorf("instrument %v: %w", name, err)
		}
		bank.Register(name, inst)
	}
	return nil
}
