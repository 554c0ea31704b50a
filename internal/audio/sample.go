package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"git.lost.host/meutraa/keyfall/internal/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/remeh/sizedwaitgroup"
)

// Sample is a recorded sound, pitch shifted by resampling.
type Sample struct {
	Buffer     *beep.Buffer
	Root       int // MIDI note the recording was made at
	SampleRate beep.SampleRate
}

func LoadSample(path string, sr beep.SampleRate) (*Sample, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, err
	}
	streamer, format, err := wav.Decode(f)
	if nil != err {
		f.Close()
		return nil, fmt.Errorf("unable to decode %v: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return &Sample{Buffer: buffer, Root: 60, SampleRate: sr}, nil
}

func (s *Sample) Voice(pitch, velocity int, d time.Duration) beep.Streamer {
	ratio := math.Pow(2, float64(pitch-s.Root)/12)
	ratio *= float64(s.Buffer.Format().SampleRate) / float64(s.SampleRate)
	src := s.Buffer.Streamer(0, s.Buffer.Len())
	return withVelocity(beep.Take(s.SampleRate.N(d), beep.ResampleRatio(4, ratio, src)), velocity)
}

func (s *Sample) Play(out Output, pitch, velocity int, d time.Duration) {
	out(s.Voice(pitch, velocity, d))
}

// LoadSamples decodes every .wav file in dir in parallel. The file name
// without extension is the instrument name. Files that fail to decode are
// logged and skipped.
func LoadSamples(dir string, sr beep.SampleRate, logger *log.Logger) (map[string]*Sample, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if nil != err {
		return nil, err
	}

	var mu sync.Mutex
	samples := map[string]*Sample{}
	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, p := range paths {
		wg.Add()
		go func(p string) {
			defer wg.Done()
			sample, err := LoadSample(p, sr)
			if nil != err {
				logger.Errorf("skipping sample: %v", err)
				return
			}
			id := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
			mu.Lock()
			samples[id] = sample
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	return samples, nil
}
