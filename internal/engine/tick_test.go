package engine

import (
	"math"
	"testing"

	"git.lost.host/meutraa/keyfall/internal/game"
)

func newState(t *testing.T, notes ...game.NoteData) game.State {
	t.Helper()
	for i := range notes {
		notes[i].ID = i
	}
	s, err := NewState(notes, DefaultConfig())
	if nil != err {
		t.Fatalf("unable to create state: %v", err)
	}
	return s
}

func tickUntil(s game.State, cfg Config, until float64) (game.State, []game.PlayRequest) {
	var plays []game.PlayRequest
	for s.Time < until {
		var p []game.PlayRequest
		s, p = Tick(s, cfg)
		plays = append(plays, p...)
	}
	return s, plays
}

func TestNewStateRequiresNotes(t *testing.T) {
	if _, err := NewState(nil, DefaultConfig()); nil == err {
		t.Log("expected an error for an empty score")
		t.Fail()
	}
	if _, err := NewState([]game.NoteData{}, DefaultConfig()); nil == err {
		t.Log("expected an error for an empty score")
		t.Fail()
	}
}

func TestInitialState(t *testing.T) {
	s := newState(t, game.NoteData{UserPlayed: true, Pitch: 60, Start: 2, End: 2.5})
	if s.Time != -3.5 || s.Score != 0 || len(s.Tokens) != 0 || s.Paused || s.Ended {
		t.Log(s)
		t.Fail()
	}
}

func TestTimeIsMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	s := newState(t, game.NoteData{Start: 100, End: 101})
	initial := s.Time
	for n := 1; n <= 5000; n++ {
		prev := s.Time
		s, _ = Tick(s, cfg)
		if s.Time <= prev {
			t.Fatalf("time went from %v to %v", prev, s.Time)
		}
		expected := initial + float64(n)*cfg.TickPeriod
		if math.Abs(s.Time-expected) > 1e-9 {
			t.Fatalf("after %v ticks time is %v, expected %v", n, s.Time, expected)
		}
	}
}

func TestUserNoteScenario(t *testing.T) {
	cfg := DefaultConfig()
	s := newState(t, game.NoteData{UserPlayed: true, Instrument: "piano", Velocity: 100, Pitch: 60, Start: 2, End: 2.5})

	s, _ = tickUntil(s, cfg, 2)
	if s.Time != 2 {
		t.Fatalf("expected to stop at 2, stopped at %v", s.Time)
	}
	if len(s.Tokens) != 1 {
		t.Fatalf("expected one token, got %v", len(s.Tokens))
	}
	if tok := s.Tokens[0]; tok.Lane != 0 || !tok.Active || tok.Consumed {
		t.Fatalf("unexpected token %+v", tok)
	}

	res := Reduce(s, game.LaneAction(0), cfg)
	if res.State.Score != 10 {
		t.Log("score", res.State.Score)
		t.Fail()
	}
	if !res.State.Tokens[0].Consumed || res.State.Tokens[0].Active {
		t.Log("token was not consumed", res.State.Tokens[0])
		t.Fail()
	}
	if len(res.Plays) != 1 || res.Plays[0].Pitch != 60 || res.Plays[0].Garbled {
		t.Log("plays", res.Plays)
		t.Fail()
	}

	s = res.State
	for s.Time <= 2.5 {
		if s.Ended {
			t.Fatalf("ended early at %v", s.Time)
		}
		s, _ = Tick(s, cfg)
	}
	if !s.Ended {
		t.Log("not ended at", s.Time)
		t.Fail()
	}
	if len(s.Tokens) != 0 {
		t.Log("the consumed token is still around", s.Tokens)
		t.Fail()
	}
}

func TestAutoNoteScenario(t *testing.T) {
	cfg := DefaultConfig()
	s := newState(t,
		game.NoteData{Instrument: "bass", Velocity: 90, Pitch: 36, Start: 1, End: 1.5},
		game.NoteData{Start: 10, End: 11},
	)

	s, plays := tickUntil(s, cfg, 1)
	if len(plays) != 0 || s.AutoNotes[0].Played {
		t.Fatalf("played before its start")
	}

	s, plays = Tick(s, cfg)
	if s.Time != 1.01 {
		t.Fatalf("unexpected time %v", s.Time)
	}
	note := s.AutoNotes[0]
	if !note.Played || note.PlayedAt != 1 {
		t.Fatalf("expected played at 1, got %+v", note)
	}
	if len(plays) != 1 || plays[0].Instrument != "bass" || plays[0].Garbled {
		t.Fatalf("unexpected plays %v", plays)
	}

	count := 0
	for s.Time < 1.5 {
		s, plays = Tick(s, cfg)
		count += len(plays)
		if len(s.AutoNotes) > 0 && s.AutoNotes[0].ID == 0 && s.AutoNotes[0].PlayedAt != 1 {
			t.Fatalf("played time changed to %v", s.AutoNotes[0].PlayedAt)
		}
	}
	if count != 0 {
		t.Log("note played again", count)
		t.Fail()
	}

	// Dropped once its end is behind the previous tick time
	s, _ = Tick(s, cfg)
	for _, n := range s.AutoNotes {
		if n.ID == 0 {
			t.Log("expired note still tracked at", s.Time)
			t.Fail()
		}
	}
}

func TestTokenFallsOffOnce(t *testing.T) {
	cfg := DefaultConfig()
	s := newState(t, game.NoteData{UserPlayed: true, Pitch: 61, Start: 0, End: 1})

	seen := false
	fallen := 0
	for i := 0; i < 2000; i++ {
		s, _ = Tick(s, cfg)
		for _, tok := range s.Tokens {
			seen = true
			if tok.Lane != 1 {
				t.Fatalf("wrong lane %v", tok.Lane)
			}
			if !tok.Active {
				if tok.Y != cfg.PathLength {
					t.Fatalf("fell at %v", tok.Y)
				}
				fallen++
			}
		}
	}
	if !seen {
		t.Fatal("token never spawned")
	}
	if fallen != 1 {
		t.Log("a fallen token should be drawn exactly once, got", fallen)
		t.Fail()
	}
	if len(s.Tokens) != 0 {
		t.Log("tokens left", s.Tokens)
		t.Fail()
	}
}

func TestZeroDurationNeverSpawns(t *testing.T) {
	cfg := DefaultConfig()
	s := newState(t,
		game.NoteData{UserPlayed: true, Pitch: 60, Start: 1, End: 1},
		game.NoteData{UserPlayed: true, Pitch: 60, Start: 1, End: 0.5},
	)
	for i := 0; i < 1000; i++ {
		s, _ = Tick(s, cfg)
		if len(s.Tokens) != 0 {
			t.Fatalf("spawned a token at %v", s.Time)
		}
	}
}

func TestOneTokenPerNote(t *testing.T) {
	cfg := DefaultConfig()
	notes := []game.NoteData{}
	for i := 0; i < 40; i++ {
		notes = append(notes, game.NoteData{UserPlayed: true, Pitch: 60 + i, Start: float64(i) * 0.1, End: float64(i)*0.1 + 0.05})
	}
	s := newState(t, notes...)
	spawns := map[int]int{}
	for i := 0; i < 1500; i++ {
		before := map[int]bool{}
		for _, tok := range s.Tokens {
			before[tok.Note.ID] = true
		}
		a := game.ActionTick
		if i%7 == 0 {
			a = game.LaneAction(i % game.NLanes)
		}
		s = Reduce(s, a, cfg).State

		active := map[int]bool{}
		for _, tok := range s.Tokens {
			if !before[tok.Note.ID] {
				spawns[tok.Note.ID]++
			}
			if tok.Active {
				if active[tok.Note.ID] {
					t.Fatalf("two active tokens for note %v", tok.Note.ID)
				}
				active[tok.Note.ID] = true
			}
		}
	}
	for id, n := range spawns {
		if n != 1 {
			t.Log("note", id, "spawned", n, "times")
			t.Fail()
		}
	}
	if len(spawns) != len(notes) {
		t.Log("spawned", len(spawns), "of", len(notes))
		t.Fail()
	}
}

func TestEndedLatches(t *testing.T) {
	cfg := DefaultConfig()
	s := newState(t, game.NoteData{UserPlayed: true, Pitch: 60, Start: 0, End: 0.2})
	s, _ = tickUntil(s, cfg, 0.21)
	if !s.Ended {
		t.Fatalf("expected ended at %v", s.Time)
	}
	for i := 0; i < 500; i++ {
		a := game.ActionTick
		switch i % 5 {
		case 1:
			a = game.LaneAction(0)
		case 3:
			a = game.ActionPause
		}
		s = Reduce(s, a, cfg).State
		if !s.Ended {
			t.Fatalf("ended reverted after %v", a)
		}
	}
}

func TestNegativeFinalNoteNeverEnds(t *testing.T) {
	cfg := DefaultConfig()
	s := newState(t, game.NoteData{Start: -5, End: -4})
	for i := 0; i < 1000; i++ {
		s, _ = Tick(s, cfg)
	}
	if s.Ended {
		t.Log("a final note ending before zero must not end the game")
		t.Fail()
	}
}
