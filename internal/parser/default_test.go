package parser

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/keyfall/internal/game"
	"git.lost.host/meutraa/keyfall/internal/testdata"
)

func TestParse(t *testing.T) {
	p := DefaultParser{}
	notes, err := p.Parse(strings.NewReader(testdata.Score))
	if nil != err {
		t.Fatalf("unable to parse score: %v", err)
	}
	expected := []game.NoteData{
		{ID: 0, UserPlayed: true, Instrument: "piano", Velocity: 100, Pitch: 60, Start: 2, End: 2.5},
		{ID: 1, UserPlayed: false, Instrument: "bass", Velocity: 90, Pitch: 36, Start: 1, End: 1.5},
		{ID: 2, UserPlayed: true, Instrument: "piano", Velocity: 100, Pitch: 61, Start: 2.5, End: 2.75},
		{ID: 3, UserPlayed: false, Instrument: "drums", Velocity: 127, Pitch: 42, Start: 0, End: 0.1},
		{ID: 4, UserPlayed: true, Instrument: "piano", Velocity: 80, Pitch: 63, Start: 3.25, End: 3.25},
		{ID: 5, UserPlayed: false, Instrument: "bass", Velocity: 90, Pitch: 38, Start: 3, End: 4},
	}
	if len(notes) != len(expected) {
		t.Fatalf("expected %v notes, got %v", len(expected), len(notes))
	}
	for i := range expected {
		if notes[i] != expected[i] {
			t.Log("out     ", notes[i])
			t.Log("expected", expected[i])
			t.Fail()
		}
	}
}

var userPlayedTests = map[string]bool{
	"True":  true,
	"true":  false,
	"TRUE":  false,
	"False": false,
	"1":     false,
	"":      false,
	"Truee": false,
}

func TestUserPlayedIsExact(t *testing.T) {
	p := DefaultParser{}
	for flag, expected := range userPlayedTests {
		score := "a,b,c,d,e,f\n" + flag + ",piano,100,60,1,2\n"
		notes, err := p.Parse(strings.NewReader(score))
		if nil != err {
			t.Fatalf("unable to parse %q: %v", flag, err)
		}
		if notes[0].UserPlayed != expected {
			t.Log("flag", flag)
			t.Fail()
		}
	}
}

var malformedScores = []string{
	"header\nTrue,piano,100,60,1\n",
	"a,b,c,d,e,f\nTrue,piano,100,60,1,2,3\n",
	"a,b,c,d,e,f\nTrue,piano,loud,60,1,2\n",
	"a,b,c,d,e,f\nTrue,piano,100,C4,1,2\n",
	"a,b,c,d,e,f\nTrue,piano,100,60,soon,2\n",
	"a,b,c,d,e,f\nTrue,piano,100,60,1,later\n",
	"a,b,c,d,e,f\nTrue,piano,100,60.5,1,2\n",
	"a,b,c,d,e,f\nTrue,piano,100,60,1,2\nFalse,bass,90,36\n",
}

func TestMalformedFailsWholeParse(t *testing.T) {
	p := DefaultParser{}
	for _, score := range malformedScores {
		notes, err := p.Parse(strings.NewReader(score))
		if nil == err || nil != notes {
			t.Log("score", score)
			t.Log("notes", notes)
			t.Fail()
		}
	}
}

func TestStartIsRounded(t *testing.T) {
	p := DefaultParser{}
	notes, err := p.Parse(strings.NewReader("a,b,c,d,e,f\nTrue,piano,100,60,1.23456,2\n"))
	if nil != err {
		t.Fatal(err)
	}
	if notes[0].Start != 1.23 {
		t.Log("start", notes[0].Start)
		t.Fail()
	}
	if notes[0].Played {
		t.Log("a freshly parsed note must not be played")
		t.Fail()
	}
}

func TestPartitionRoundTrip(t *testing.T) {
	p := DefaultParser{}
	for _, seed := range []int64{1, 7, 99, 12345} {
		score, flags := testdata.Generate(200, seed)
		notes, err := p.Parse(strings.NewReader(score))
		if nil != err {
			t.Fatalf("unable to parse generated score: %v", err)
		}
		user, auto := game.Partition(notes)
		if len(user)+len(auto) != len(flags) {
			t.Fatalf("partition lost notes: %v + %v != %v", len(user), len(auto), len(flags))
		}
		ui, ai := 0, 0
		for row, flag := range flags {
			if flag {
				if user[ui].ID != row {
					t.Fatalf("user note %v has id %v, expected %v", ui, user[ui].ID, row)
				}
				ui++
			} else {
				if auto[ai].ID != row {
					t.Fatalf("auto note %v has id %v, expected %v", ai, auto[ai].ID, row)
				}
				ai++
			}
		}
	}
}
