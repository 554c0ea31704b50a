package score

import (
	"testing"

	"git.lost.host/meutraa/keyfall/internal/game"
)

func token(id, pitch int, start float64) game.Token {
	return game.NewToken(game.NoteData{
		ID:         id,
		UserPlayed: true,
		Instrument: "piano",
		Velocity:   100,
		Pitch:      pitch,
		Start:      start,
		End:        start + 0.5,
	})
}

type hitTest struct {
	Tokens   []game.Token
	Time     float64
	Lane     int
	Expected int // ID of the consumed note, -1 for none
	Points   int
}

var hitTests = map[string]hitTest{
	"exact": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 2, Lane: 0, Expected: 0, Points: 10,
	},
	"half a second late": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 2.5, Lane: 0, Expected: 0, Points: 5,
	},
	"half a second early": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 1.5, Lane: 0, Expected: 0, Points: 5,
	},
	"inside margin": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 2.29, Lane: 0, Expected: 0, Points: 10,
	},
	"on margin": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 2.3, Lane: 0, Expected: 0, Points: 5,
	},
	"edge of eligibility": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 1.3, Lane: 0, Expected: 0, Points: 5,
	},
	"too early": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 1.29, Lane: 0, Expected: -1,
	},
	"too late": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 2.71, Lane: 0, Expected: -1,
	},
	"wrong lane": {
		Tokens: []game.Token{token(0, 60, 2)}, Time: 2, Lane: 1, Expected: -1,
	},
	"no tokens": {
		Tokens: []game.Token{}, Time: 2, Lane: 0, Expected: -1,
	},
	"oldest due note first": {
		Tokens: []game.Token{token(1, 64, 2.4), token(0, 60, 1.8)}, Time: 2.3, Lane: 0, Expected: 0, Points: 5,
	},
	"other lanes ignored": {
		Tokens: []game.Token{token(0, 61, 1.9), token(1, 65, 2), token(2, 60, 2)}, Time: 2, Lane: 1, Expected: 0, Points: 10,
	},
}

func TestHit(t *testing.T) {
	scorer := NewDefaultScorer()
	for name, test := range hitTests {
		state := game.State{Tokens: test.Tokens, Time: test.Time, Score: 7}
		next, plays := scorer.Hit(state, test.Lane)

		if test.Expected == -1 {
			if next.Score != state.Score || len(plays) != 0 {
				t.Log(name, "expected no hit, got score", next.Score, "plays", plays)
				t.Fail()
			}
			for i := range next.Tokens {
				if next.Tokens[i] != state.Tokens[i] {
					t.Log(name, "token changed without a hit")
					t.Fail()
				}
			}
			continue
		}

		consumed := 0
		for _, tok := range next.Tokens {
			if tok.Consumed {
				consumed++
				if tok.Note.ID != test.Expected || tok.Active {
					t.Log(name, "wrong token consumed", tok)
					t.Fail()
				}
			}
		}
		if consumed != 1 {
			t.Log(name, "consumed", consumed, "tokens")
			t.Fail()
		}
		if next.Score != state.Score+test.Points {
			t.Log(name, "score", next.Score, "expected", state.Score+test.Points)
			t.Fail()
		}
		if len(plays) != 1 {
			t.Log(name, "expected one play request, got", len(plays))
			t.Fail()
		}
	}
}

func TestHitDoesNotTouchInput(t *testing.T) {
	scorer := NewDefaultScorer()
	state := game.State{Tokens: []game.Token{token(0, 60, 2)}, Time: 2}
	_, _ = scorer.Hit(state, 0)
	if !state.Tokens[0].Active || state.Tokens[0].Consumed {
		t.Log("the previous state was modified")
		t.Fail()
	}
}

func TestHitExclusivity(t *testing.T) {
	scorer := NewDefaultScorer()
	state := game.State{Tokens: []game.Token{token(0, 60, 2)}, Time: 2}
	once, plays := scorer.Hit(state, 0)
	if len(plays) != 1 {
		t.Fatalf("first press should hit")
	}
	twice, plays := scorer.Hit(once, 0)
	if len(plays) != 0 || twice.Score != once.Score {
		t.Log("second press found the same note again")
		t.Fail()
	}
}

func TestRequest(t *testing.T) {
	scorer := NewDefaultScorer()
	note := game.NoteData{Instrument: "piano", Velocity: 90, Pitch: 60, Start: 2, End: 2.5}

	onTime := scorer.Request(note, 2.1)
	if onTime.Garbled || onTime.Pitch != 60 || onTime.Duration != 0.5 || onTime.Offset != 0.1 {
		t.Log("on time", onTime)
		t.Fail()
	}

	late := scorer.Request(note, 2.5)
	if !late.Garbled || late.Offset != 0.5 || late.Instrument != "piano" || late.Velocity != 90 {
		t.Log("late", late)
		t.Fail()
	}
	if again := scorer.Request(note, 2.5); again != late {
		t.Log("substitution is not deterministic", again, late)
		t.Fail()
	}
}
