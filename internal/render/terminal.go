package render

import (
	"bufio"
	"image/color"
	"io"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/RMahshie/loggraph/internal/chart"
)

// CellTarget is a character-cell drawing surface. tcell.Screen satisfies it.
type CellTarget interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// TerminalRenderer draws charts with box-drawing characters, one cell per
// layout pixel. It can paint a tcell screen or emit plain text.
type TerminalRenderer struct {
	Style Style
}

const (
	runeVertical   = '│'
	runeHorizontal = '─'
	runeCross      = '┼'
	runePlot       = '•'
)

type cellRole uint8

const (
	roleBackground cellRole = iota
	roleDull
	roleGrid
	roleLabel
	rolePlot
)

type cellGrid struct {
	w, h  int
	runes []rune
	roles []cellRole
}

func newCellGrid(w, h int) *cellGrid {
	c := &cellGrid{w: w, h: h, runes: make([]rune, w*h), roles: make([]cellRole, w*h)}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *cellGrid) set(x, y int, r rune, role cellRole) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y*c.w+x] = r
	c.roles[y*c.w+x] = role
}

func (c *cellGrid) at(x, y int) (rune, cellRole) {
	return c.runes[y*c.w+x], c.roles[y*c.w+x]
}

func (r *TerminalRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the chart as rows of text without colour
func (r *TerminalRenderer) Render(w io.Writer, g *chart.Geometry) error {
	cells := r.cells(g)
	bw := bufio.NewWriter(w)
	for y := 0; y < cells.h; y++ {
		if _, err := bw.WriteString(string(cells.runes[y*cells.w : (y+1)*cells.w])); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Draw paints the chart onto a cell target
func (r *TerminalRenderer) Draw(dst CellTarget, g *chart.Geometry) {
	cells := r.cells(g)
	styles := map[cellRole]tcell.Style{}
	base := tcell.StyleDefault.Background(tcellColor(r.Style.Background))
	for role, c := range map[cellRole]color.Color{
		roleBackground: r.Style.Background,
		roleDull:       r.Style.GridDull,
		roleGrid:       r.Style.Grid,
		roleLabel:      r.Style.Grid,
		rolePlot:       r.Style.Plot,
	} {
		styles[role] = base.Foreground(tcellColor(c))
	}
	styles[roleLabel] = styles[roleLabel].Bold(true)

	for y := 0; y < cells.h; y++ {
		for x := 0; x < cells.w; x++ {
			ch, role := cells.at(x, y)
			dst.SetContent(x, y, ch, nil, styles[role])
		}
	}
}

func (r *TerminalRenderer) cells(g *chart.Geometry) *cellGrid {
	c := newCellGrid(g.Width, g.Height)

	for _, gl := range g.Vertical {
		if !gl.Ruled {
			continue
		}
		role := roleDull
		if gl.Tier == chart.TierMajor {
			role = roleGrid
		}
		x := clampCell(gl.Position, c.w)
		for y := 0; y < c.h; y++ {
			c.set(x, y, runeVertical, role)
		}
	}

	for _, gl := range g.Horizontal {
		if !gl.Ruled {
			continue
		}
		y := clampCell(gl.Position, c.h)
		for x := 0; x < c.w; x++ {
			ch, role := c.at(x, y)
			if ch == runeVertical {
				c.set(x, y, runeCross, role)
			} else {
				c.set(x, y, runeHorizontal, roleDull)
			}
		}
	}

	for _, gl := range g.Vertical {
		if gl.Label == "" {
			continue
		}
		label := []rune(gl.Label)
		x := clampCell(gl.Position, c.w)
		switch gl.Anchor {
		case chart.AnchorMiddle:
			x -= len(label) / 2
		case chart.AnchorEnd:
			x -= len(label) - 1
		}
		c.text(x, c.h-1, label)
	}
	for _, gl := range g.Horizontal {
		if gl.Label != "" {
			c.text(0, clampCell(gl.Position, c.h), []rune(gl.Label))
		}
	}

	for _, s := range g.Segments {
		c.segment(s)
	}
	return c
}

func (c *cellGrid) text(x, y int, label []rune) {
	for i, ch := range label {
		c.set(x+i, y, ch, roleLabel)
	}
}

// segment steps along the longer axis so the line has no gaps.
func (c *cellGrid) segment(s chart.Segment) {
	x0, y0 := s.From.X, s.From.Y
	dx, dy := s.To.X-x0, s.To.Y-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.set(clampCell(x0, c.w), clampCell(y0, c.h), runePlot, rolePlot)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(clampCell(x0+dx*t, c.w), clampCell(y0+dy*t, c.h), runePlot, rolePlot)
	}
}

func clampCell(v float64, n int) int {
	i := int(math.Round(v))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func tcellColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
