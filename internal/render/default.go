package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/keyfall/internal/game"
	"git.lost.host/meutraa/keyfall/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

type Options struct {
	Spacing    uint16        // Columns between lanes
	BarRow     uint16        // Rows between the hit bar and the bottom of the screen
	FPS        float64       // Upper bound on frames drawn per second
	HitY       int           // Token Y at which a note is due
	Margin     float64       // Seconds within which a hit is shown as on time
	SongLength time.Duration // Shown in the side panel

	// Used when the output is not a terminal
	Width, Height uint16
}

type DefaultRenderer struct {
	Theme theme.Theme

	out          io.Writer
	opts         Options
	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
	limiter      *rate.Limiter

	width, height uint16
	hitRow        uint16
	sideCol       uint16
	columns       [game.NLanes]uint16

	drawn      []cell       // Notes drawn last frame, cleared before the next
	marked     map[int]bool // Notes already given a hit or miss decoration
	lastPaused bool
	lastEnded  bool
	lastScore  int
	overlay    string
	length     string
}

type cell struct {
	Row, Col uint16
}

type decoration struct {
	X, Y    uint16
	Content string
	Frames  int // remaining frames until removed
}

func NewDefaultRenderer(out io.Writer, th theme.Theme, opts Options) *DefaultRenderer {
	if opts.FPS <= 0 {
		opts.FPS = 120
	}
	if opts.HitY <= 0 {
		opts.HitY = 350
	}
	if opts.Margin <= 0 {
		opts.Margin = 0.3
	}
	return &DefaultRenderer{
		Theme:   th,
		out:     out,
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.FPS), 1),
		width:   opts.Width,
		height:  opts.Height,
		marked:  map[int]bool{},
		length:  durafmt.Parse(opts.SongLength.Round(time.Second)).LimitFirstN(2).String(),
	}
}

func (r *DefaultRenderer) fd() (int, bool) {
	f, ok := r.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}

func (r *DefaultRenderer) Init() error {
	if fd, ok := r.fd(); ok {
		columns, rows, err := term.GetSize(fd)
		if nil != err {
			return fmt.Errorf("unable to get terminal size: %w", err)
		}
		r.width, r.height = uint16(columns), uint16(rows)

		state, err := term.MakeRaw(fd)
		if nil != err {
			return err
		}
		r.restoreState = state
	}
	if r.width == 0 || r.height == 0 {
		r.width, r.height = 80, 24
	}
	r.layout()

	fmt.Fprintf(r.out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[2J",     // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if fd, ok := r.fd(); ok && nil != r.restoreState {
		return term.Restore(fd, r.restoreState)
	}
	return nil
}

func (r *DefaultRenderer) layout() {
	mc := r.width >> 1
	s := r.opts.Spacing
	r.columns = [game.NLanes]uint16{mc - s*3, mc - s, mc + s, mc + s*3}
	r.hitRow = r.height - r.opts.BarRow
	if r.opts.BarRow >= r.height {
		r.hitRow = r.height
	}
	r.sideCol = 2
	if r.columns[0] > 30 {
		r.sideCol = r.columns[0] - 28
	}
}

// row maps a token's progress along the path to a screen row. Tokens are due
// at the hit bar when Y reaches HitY.
func (r *DefaultRenderer) row(y int) uint16 {
	const top = 2
	span := int(r.hitRow) - top
	return uint16(top + y*span/r.opts.HitY)
}

func (r *DefaultRenderer) AddDecoration(col, row uint16, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, " ")
			continue
		}
		r.Fill(d.Y, d.X, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// Render draws a snapshot. Frames only differing in token positions are
// dropped when they come faster than FPS.
func (r *DefaultRenderer) Render(s game.State) {
	// Hit and fallen tokens stay in the state until the next tick
	for _, t := range s.Tokens {
		if t.Active || r.marked[t.Note.ID] {
			continue
		}
		r.marked[t.Note.ID] = true
		switch {
		case t.Consumed:
			perfect := abs(s.Time-t.Note.Start) < r.opts.Margin
			r.AddDecoration(r.columns[t.Lane], r.hitRow-1, r.Theme.RenderHit(t.Lane, perfect), 24)
		default:
			r.AddDecoration(r.columns[t.Lane], r.hitRow-1, r.Theme.RenderMiss(t.Lane), 24)
		}
	}

	important := s.Paused != r.lastPaused || s.Ended != r.lastEnded || s.Score != r.lastScore
	if !important && !r.limiter.Allow() {
		return
	}
	r.lastPaused, r.lastEnded, r.lastScore = s.Paused, s.Ended, s.Score

	for _, c := range r.drawn {
		r.Fill(c.Row, c.Col, " ")
	}
	r.drawn = r.drawn[:0]

	for i := 0; i < game.NLanes; i++ {
		r.Fill(r.hitRow, r.columns[i], r.Theme.RenderHitField(i))
	}

	for _, t := range s.ActiveTokens() {
		row := r.row(t.Y)
		if row < 1 || row > r.height {
			continue
		}
		col := r.columns[t.Lane]
		r.Fill(row, col, r.Theme.RenderNote(t.Lane))
		r.drawn = append(r.drawn, cell{Row: row, Col: col})
	}

	r.tickDecorations()

	r.Fill(4, r.sideCol, r.Theme.RenderLabel(fmt.Sprintf("  Score:  %-12v", humanize.Comma(int64(s.Score)))))
	r.Fill(5, r.sideCol, r.Theme.RenderLabel(fmt.Sprintf("   Time:  %-12.2f", s.Time)))
	r.Fill(6, r.sideCol, r.Theme.RenderLabel(fmt.Sprintf("   Song:  %v", r.length)))

	overlay := ""
	switch {
	case s.Paused:
		overlay = "PAUSED  esc to resume"
	case s.Ended:
		overlay = fmt.Sprintf("SONG OVER  %v points  q to quit", humanize.Comma(int64(s.Score)))
	}
	overlayRow := r.height / 2
	if overlay != r.overlay {
		r.Fill(overlayRow, 1, strings.Repeat(" ", int(r.width)))
		r.overlay = overlay
	}
	if overlay != "" {
		r.center(overlayRow, r.Theme.RenderOverlay(overlay))
	}

	r.flush()
}

func (r *DefaultRenderer) center(row uint16, content string) {
	w := lipgloss.Width(content)
	col := 1
	if int(r.width) > w {
		col = (int(r.width)-w)/2 + 1
	}
	r.Fill(row, uint16(col), content)
}

func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) flush() {
	r.out.Write([]byte(r.buffer.String()))
	r.buffer.Reset()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
