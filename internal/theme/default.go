package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) RenderNote(lane int) string {
	return noteStyles[laneIndex(lane)].Render(noteSym)
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	return barStyle.Render(barSym)
}

func (t *DefaultTheme) RenderHit(lane int, perfect bool) string {
	if perfect {
		return perfectStyle.Render(hitSym)
	}
	return lateStyle.Render(hitSym)
}

func (t *DefaultTheme) RenderMiss(lane int) string {
	return missStyle.Render(missSym)
}

func (t *DefaultTheme) RenderOverlay(message string) string {
	return overlayStyle.Render(message)
}

func (t *DefaultTheme) RenderLabel(message string) string {
	return labelStyle.Render(message)
}

const (
	noteSym = "⬤"
	barSym  = "-"
	hitSym  = "◎"
	missSym = "⨯"
)

var (
	laneColors = [...]lipgloss.Color{
		"#EC1E00", // red
		"#0076EC", // blue
		"#6A00EC", // purple
		"#ECC300", // yellow
	}
	noteStyles = func() []lipgloss.Style {
		styles := make([]lipgloss.Style, len(laneColors))
		for i, c := range laneColors {
			styles[i] = lipgloss.NewStyle().Foreground(c)
		}
		return styles
	}()
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6A6A6A"))
	perfectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00EC80")).Bold(true)
	lateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EC8000"))
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EC1E00")).Bold(true)
	overlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#EC006A")).
			Bold(true).
			Padding(0, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ADECEC"))
)

func laneIndex(lane int) int {
	if lane < 0 || lane >= len(laneColors) {
		return 0
	}
	return lane
}
