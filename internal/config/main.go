package config

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"git.lost.host/meutraa/keyfall/internal/engine"
	"git.lost.host/meutraa/keyfall/internal/game"
	"git.lost.host/meutraa/keyfall/internal/input"
	"git.lost.host/meutraa/keyfall/internal/log"
	"git.lost.host/meutraa/keyfall/internal/score"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

type Config struct {
	Score string

	TickPeriod  time.Duration
	LeadTime    time.Duration
	StartOffset time.Duration
	PathLength  int
	Eligibility time.Duration
	Margin      time.Duration

	Keys         string
	Device       string
	DeviceKeys   []uint16
	RepeatWindow time.Duration

	SoundFont string
	Samples   string
	Programs  map[string]int

	FPS     float64
	Spacing uint16
	BarRow  uint16

	Database string
	Replay   bool
	NoRecord bool

	LogFile  string
	LogLevel string
}

// Parse reads the command line, args excluding the program name.
func Parse(args []string) (*Config, error) {
	c := &Config{}
	var programs map[string]string

	app := kingpin.New("keyfall", "Play along to a score by pressing keys as the notes reach the bar.")
	app.Version(Version)
	app.Arg("score", "Score file, a csv of user_played,instrument,velocity,pitch,start,end").Required().ExistingFileVar(&c.Score)

	app.Flag("tick", "Simulated time per tick").Default("10ms").DurationVar(&c.TickPeriod)
	app.Flag("lead", "Time a note is on screen before it is due").Default("3.5s").DurationVar(&c.LeadTime)
	app.Flag("offset", "Delay before the first note").Default("3.5s").Short('o').DurationVar(&c.StartOffset)
	app.Flag("path-length", "Ticks a note falls before leaving the screen").Default("420").IntVar(&c.PathLength)
	app.Flag("eligibility", "How far from a note a press can still take it").Default("700ms").DurationVar(&c.Eligibility)
	app.Flag("margin", "How far from a note a press is still on time").Default("300ms").DurationVar(&c.Margin)

	app.Flag("keys", "Terminal keys, one per lane").Default("dfjk").Short('k').StringVar(&c.Keys)
	app.Flag("device", "Read keys from an evdev device instead, e.g. /dev/input/event3").StringVar(&c.Device)
	app.Flag("device-keys", "Evdev key codes, one per lane").Default(
		strconv.Itoa(int(input.KeyD)), strconv.Itoa(int(input.KeyF)),
		strconv.Itoa(int(input.KeyJ)), strconv.Itoa(int(input.KeyK)),
	).Uint16ListVar(&c.DeviceKeys)
	app.Flag("repeat-window", "Terminal key repeats closer than this are ignored").Default("120ms").DurationVar(&c.RepeatWindow)

	app.Flag("soundfont", "SoundFont used for instruments").Short('s').StringVar(&c.SoundFont)
	app.Flag("samples", "Directory of .wav files named after instruments").StringVar(&c.Samples)
	app.Flag("program", "General MIDI program for an instrument, e.g. piano=0").StringMapVar(&programs)

	app.Flag("fps", "Maximum frames drawn per second").Default("120").Float64Var(&c.FPS)
	app.Flag("spacing", "Columns between lanes").Default("6").Short('S').Uint16Var(&c.Spacing)
	app.Flag("bar-row", "Console rows between the hit bar and the bottom").Default("8").Uint16Var(&c.BarRow)

	app.Flag("db", "Session database").Default("./sessions.db").StringVar(&c.Database)
	app.Flag("replay", "Watch the last recorded session of the score").BoolVar(&c.Replay)
	app.Flag("no-record", "Do not record this session").BoolVar(&c.NoRecord)

	app.Flag("log", "Log file").Default("./keyfall.log").StringVar(&c.LogFile)
	app.Flag("log-level", "Log level").Default("info").EnumVar(&c.LogLevel, log.Levels...)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}

	c.Programs = make(map[string]int, len(programs))
	for name, value := range programs {
		program, err := strconv.Atoi(value)
		if nil != err || program < -1 || program > 127 {
			return nil, fmt.Errorf("invalid program %v for %v", value, name)
		}
		c.Programs[name] = program
	}
	return c, c.validate()
}

func (c *Config) validate() error {
	switch {
	case c.TickPeriod <= 0:
		return fmt.Errorf("tick must be positive")
	case c.LeadTime < c.TickPeriod:
		return fmt.Errorf("lead must be at least one tick")
	case c.PathLength <= int(c.LeadTime/c.TickPeriod):
		return fmt.Errorf("path-length must reach past the hit bar, %v ticks", int(c.LeadTime/c.TickPeriod))
	case c.Margin > c.Eligibility:
		return fmt.Errorf("margin %v is wider than eligibility %v", c.Margin, c.Eligibility)
	case utf8.RuneCountInString(c.Keys) != game.NLanes:
		return fmt.Errorf("need %v keys, got %q", game.NLanes, c.Keys)
	case len(c.DeviceKeys) != game.NLanes:
		return fmt.Errorf("need %v device keys, got %v", game.NLanes, len(c.DeviceKeys))
	}
	seen := map[rune]bool{}
	for _, r := range c.Keys {
		if seen[r] {
			return fmt.Errorf("key %q is used twice", r)
		}
		seen[r] = true
	}
	return nil
}

// Engine returns the simulation settings.
func (c *Config) Engine() engine.Config {
	scorer := score.NewDefaultScorer()
	scorer.Eligibility = c.Eligibility.Seconds()
	scorer.Margin = c.Margin.Seconds()
	return engine.Config{
		TickPeriod:  c.TickPeriod.Seconds(),
		LeadTime:    c.LeadTime.Seconds(),
		StartOffset: c.StartOffset.Seconds(),
		PathLength:  c.PathLength,
		Scorer:      scorer,
	}
}

// Sources returns the clock and keyboard. quit is called when the player
// asks to leave.
func (c *Config) Sources(quit func()) []input.Source {
	clock := &input.Clock{Period: c.TickPeriod}
	if c.Device == "" {
		return []input.Source{clock, &input.TerminalKeys{
			Lanes:  []rune(c.Keys),
			Filter: input.NewRepeatFilter(c.RepeatWindow),
			OnQuit: quit,
		}}
	}
	// The terminal still handles pause and quit, the device only the lanes
	return []input.Source{
		clock,
		&input.DeviceKeys{Path: c.Device, Lanes: c.DeviceKeys},
		&input.TerminalKeys{OnQuit: quit},
	}
}
