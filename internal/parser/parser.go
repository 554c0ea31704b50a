package parser

import (
	"io"

	"git.lost.host/meutraa/keyfall/internal/game"
)

type Parser interface {
	Parse(r io.Reader) ([]game.NoteData, error)
	ParseFile(file string) ([]game.NoteData, error)
}
