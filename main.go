package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"git.lost.host/meutraa/keyfall/internal/audio"
	"git.lost.host/meutraa/keyfall/internal/config"
	"git.lost.host/meutraa/keyfall/internal/engine"
	"git.lost.host/meutraa/keyfall/internal/game"
	"git.lost.host/meutraa/keyfall/internal/input"
	"git.lost.host/meutraa/keyfall/internal/log"
	"git.lost.host/meutraa/keyfall/internal/parser"
	"git.lost.host/meutraa/keyfall/internal/render"
	"git.lost.host/meutraa/keyfall/internal/replay"
	"git.lost.host/meutraa/keyfall/internal/theme"
	"github.com/hako/durafmt"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		stdlog.Fatalln(err)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, log.LevelFromString(cfg.LogLevel))

	// Ensure our Default implementations are used as interfaces
	var psr parser.Parser = &parser.DefaultParser{}
	var th theme.Theme = &theme.DefaultTheme{}

	data, err := os.ReadFile(cfg.Score)
	if nil != err {
		return err
	}
	notes, err := psr.Parse(bytes.NewReader(data))
	if nil != err {
		return fmt.Errorf("unable to parse %v: %w", cfg.Score, err)
	}

	ecfg := cfg.Engine()
	sum := replay.Sum(data)

	var store *replay.Store
	if cfg.Replay || !cfg.NoRecord {
		store, err = replay.Open(cfg.Database)
		if nil != err {
			return fmt.Errorf("unable to open session database: %w", err)
		}
		defer store.Close()
	}

	var session replay.Session
	if cfg.Replay {
		session, err = store.Latest(sum)
		if nil != err {
			return err
		}
		// The recording only replays at the tick it was made with
		ecfg.TickPeriod = session.TickPeriod
		logger.Infof("replaying session %v recorded %v", session.ID, session.Recorded.Format(time.RFC3339))
	}

	state, err := engine.NewState(notes, ecfg)
	if nil != err {
		return err
	}
	length := time.Duration(state.FinalNote.End * float64(time.Second))
	logger.Infof("loaded %v notes, %v to play, lasting %v",
		len(notes), len(state.UserNotes), durafmt.Parse(length.Round(time.Second)).LimitFirstN(2))

	player := setupAudio(cfg, logger)

	var r render.Renderer = render.NewDefaultRenderer(os.Stdout, th, render.Options{
		Spacing:    cfg.Spacing,
		BarRow:     cfg.BarRow,
		FPS:        cfg.FPS,
		HitY:       int(game.RoundMs(ecfg.LeadTime / ecfg.TickPeriod)),
		Margin:     cfg.Margin.Seconds(),
		SongLength: length,
	})
	if err := r.Init(); nil != err {
		return fmt.Errorf("unable to initialize renderer: %w", err)
	}
	defer func() {
		if err := r.Deinit(); nil != err {
			logger.Errorf("unable to restore terminal: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	actions := make(chan game.Action, 128)
	var sources []input.Source
	if cfg.Replay {
		sources = []input.Source{
			&replay.Source{Session: session, Period: time.Duration(session.TickPeriod * float64(time.Second))},
			&quitKeys{quit: cancel},
		}
	} else {
		sources = cfg.Sources(cancel)
	}

	loop := engine.NewLoop(state, ecfg, r, player, logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return input.Fuse(gctx, actions, sources...)
	})
	g.Go(func() error {
		defer cancel()
		return loop.Run(gctx, actions)
	})
	if err := g.Wait(); nil != err && !errors.Is(err, context.Canceled) {
		return err
	}

	final := loop.State()
	logger.Infof("finished at %.2fs with score %v", final.Time, final.Score)
	if cfg.Replay || cfg.NoRecord {
		return nil
	}
	id, err := store.Save(replay.Session{
		Sum:        sum,
		TickPeriod: ecfg.TickPeriod,
		Ticks:      loop.Ticks(),
		Journal:    loop.Journal(),
	})
	if nil != err {
		return err
	}
	logger.Infof("recorded session %v, %v inputs over %v ticks", id, len(loop.Journal()), loop.Ticks())
	return nil
}

// setupAudio falls back to silence when there is no usable sound device, the
// game is still playable without it.
func setupAudio(cfg *config.Config, logger *log.Logger) engine.Player {
	bank, sf, err := audio.BuildBank(audio.Options{
		SampleRate: audio.DefaultSampleRate,
		SoundFont:  cfg.SoundFont,
		Programs:   cfg.Programs,
		Samples:    cfg.Samples,
	}, logger)
	if nil != err {
		logger.Errorf("unable to load instruments: %v", err)
		bank = audio.NewBank(audio.NewOscillator(audio.Piano, audio.DefaultSampleRate))
		sf = nil
	}
	player, err := audio.NewBeepPlayer(audio.DefaultSampleRate, bank, logger)
	if nil != err {
		logger.Errorf("unable to open speaker, playing muted: %v", err)
		return audio.Mute{}
	}
	if nil != sf {
		player.Output()(sf)
	}
	return player
}

// quitKeys listens to the keyboard during a replay, where only quitting is
// allowed.
type quitKeys struct {
	quit func()
}

func (q *quitKeys) Run(ctx context.Context, out chan<- game.Action) error {
	ignored := make(chan game.Action, 16)
	go func() {
		for range ignored {
		}
	}()
	defer close(ignored)
	keys := &input.TerminalKeys{OnQuit: q.quit}
	return keys.Run(ctx, ignored)
}
