package render

import (
	"git.lost.host/meutraa/keyfall/internal/game"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(col, row uint16, content string, frames int)
	Render(state game.State)
	Fill(row, column uint16, message string)
}
