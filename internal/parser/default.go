package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/keyfall/internal/game"
)

// Columns of a score row, in order
const (
	colUserPlayed = iota
	colInstrument
	colVelocity
	colPitch
	colStart
	colEnd
	nColumns
)

type DefaultParser struct{}

func (p *DefaultParser) ParseFile(file string) ([]game.NoteData, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()
	notes, err := p.Parse(f)
	if nil != err {
		return nil, fmt.Errorf("unable to parse %v: %w", file, err)
	}
	return notes, nil
}

// Parse reads a header row followed by one note per row. Any bad row fails
// the whole score.
func (p *DefaultParser) Parse(r io.Reader) ([]game.NoteData, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = nColumns
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	// The header only has to have the right number of columns
	if _, err := reader.Read(); nil != err {
		if errors.Is(err, io.EOF) {
			return []game.NoteData{}, nil
		}
		return nil, fmt.Errorf("header: %w", err)
	}

	notes := []game.NoteData{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if nil != err {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		note, err := p.parseRow(len(notes), record)
		if nil != err {
			return nil, fmt.Errorf("line %v: %w", line, err)
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (p *DefaultParser) parseRow(id int, record []string) (game.NoteData, error) {
	velocity, err := parseInt(record[colVelocity])
	if nil != err {
		return game.NoteData{}, fmt.Errorf("velocity: %w", err)
	}
	pitch, err := parseInt(record[colPitch])
	if nil != err {
		return game.NoteData{}, fmt.Errorf("pitch: %w", err)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(record[colStart]), 64)
	if nil != err {
		return game.NoteData{}, fmt.Errorf("start: %w", err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(record[colEnd]), 64)
	if nil != err {
		return game.NoteData{}, fmt.Errorf("end: %w", err)
	}

	return game.NoteData{
		ID:         id,
		UserPlayed: record[colUserPlayed] == "True",
		Instrument: record[colInstrument],
		Velocity:   velocity,
		Pitch:      pitch,
		// Two places keeps the engine's windows comparisons exact
		Start: game.RoundTo(start, 2),
		End:   end,
	}, nil
}

// Velocity and pitch are written as integers, sometimes with a trailing .0
func parseInt(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if nil != err {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(v), nil
}
