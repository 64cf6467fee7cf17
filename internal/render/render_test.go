package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/loggraph/internal/chart"
)

func layout(t *testing.T, width, height int, freqs, gains []float64, labels bool) *chart.Geometry {
	t.Helper()
	e, err := chart.NewEngine(chart.DefaultDomain())
	require.NoError(t, err)
	g, err := e.Layout(context.Background(), width, height, freqs, gains, chart.Options{ShowLabels: labels})
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	for format, contentType := range map[Format]string{
		FormatSVG:  "image/svg+xml",
		FormatPNG:  "image/png",
		FormatText: "text/plain; charset=utf-8",
	} {
		r, err := New(format, DefaultStyle())
		require.NoError(t, err)
		assert.Equal(t, contentType, r.ContentType())
	}

	_, err := New("gif", DefaultStyle())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSVGRenderer(t *testing.T) {
	g := layout(t, 300, 200, []float64{20, 1000, 20000}, []float64{0, 6, -3}, true)

	var buf bytes.Buffer
	r := &SVGRenderer{Style: DefaultStyle()}
	require.NoError(t, r.Render(&buf, g))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"300\" height=\"200\""))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))

	ruled := 0
	for _, gl := range append(g.Vertical, g.Horizontal...) {
		if gl.Ruled {
			ruled++
		}
	}
	assert.Equal(t, ruled, strings.Count(out, "<line "))

	assert.Contains(t, out, ">20 Hz</text>")
	assert.Contains(t, out, "text-anchor=\"end\">20K</text>")
	assert.Contains(t, out, "text-anchor=\"middle\">1K</text>")
	assert.Contains(t, out, ">dB</text>")
	assert.Contains(t, out, "<polyline points=\"0,100 170,60 299,120\"")
	assert.Contains(t, out, "stroke-linecap=\"round\"")
}

func TestSVGRenderer_NoPlotWithoutSamples(t *testing.T) {
	g := layout(t, 300, 200, nil, nil, false)

	var buf bytes.Buffer
	require.NoError(t, (&SVGRenderer{Style: DefaultStyle()}).Render(&buf, g))
	assert.NotContains(t, buf.String(), "<polyline")
	assert.NotContains(t, buf.String(), "<text")
}

func TestPNGRenderer(t *testing.T) {
	style := DefaultStyle()
	r, err := NewPNGRenderer(style)
	require.NoError(t, err)

	g := layout(t, 300, 200, []float64{100, 10000}, []float64{0, 0}, false)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, g))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 200), img.Bounds())

	same := func(want color.Color, x, y int) {
		t.Helper()
		wr, wg, wb, _ := want.RGBA()
		gr, gg, gb, _ := img.At(x, y).RGBA()
		assert.Equal(t, [3]uint32{wr, wg, wb}, [3]uint32{gr, gg, gb}, "pixel %d,%d", x, y)
	}

	same(style.Background, 5, 50)
	same(style.Grid, 170, 50)     // 1 kHz major line
	same(style.GridDull, 140, 50) // 500 Hz minor line
	same(style.GridDull, 5, 67)   // +5 dB level
	same(style.Plot, 150, 100)    // 0 dB plot between 100 Hz and 10 kHz
}

func TestPNGRenderer_Labels(t *testing.T) {
	r, err := NewPNGRenderer(DefaultStyle())
	require.NoError(t, err)

	plain, err := r.Draw(layout(t, 300, 200, nil, nil, false))
	require.NoError(t, err)
	labeled, err := r.Draw(layout(t, 300, 200, nil, nil, true))
	require.NoError(t, err)

	changed := 0
	for y := 180; y < 200; y++ {
		for x := 0; x < 60; x++ {
			if plain.RGBAAt(x, y) != labeled.RGBAAt(x, y) {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 0, "20 Hz label should be drawn in the bottom left corner")
}

func TestPNGRenderer_SinglePoint(t *testing.T) {
	r, err := NewPNGRenderer(DefaultStyle())
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, r.Render(&buf, layout(t, 50, 40, []float64{1000}, []float64{0}, false)))
}

func TestTerminalRenderer_Text(t *testing.T) {
	g := layout(t, 80, 25, []float64{20, 20000}, []float64{0, 0}, true)

	var buf bytes.Buffer
	r := &TerminalRenderer{Style: DefaultStyle()}
	require.NoError(t, r.Render(&buf, g))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 25)
	for _, l := range lines {
		assert.Equal(t, 80, len([]rune(l)))
	}

	assert.True(t, strings.HasPrefix(lines[0], "dB"))
	assert.True(t, strings.HasPrefix(lines[24], "20 Hz"))
	assert.True(t, strings.HasSuffix(lines[24], "20K"))
	assert.Contains(t, buf.String(), string(runeCross))

	// 0 dB sits mid-height: the plot runs across row 12 or 13.
	mid := lines[12] + lines[13]
	assert.GreaterOrEqual(t, strings.Count(mid, string(runePlot)), 70)
}

type recordingTarget struct {
	cells map[[2]int]rune
	plot  tcell.Style
	hits  int
}

func (r *recordingTarget) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	r.cells[[2]int{x, y}] = primary
	if primary == runePlot {
		r.plot = style
		r.hits++
	}
}

func TestTerminalRenderer_Draw(t *testing.T) {
	style := DefaultStyle()
	g := layout(t, 40, 12, []float64{100, 1000}, []float64{10, -10}, false)

	target := &recordingTarget{cells: map[[2]int]rune{}}
	(&TerminalRenderer{Style: style}).Draw(target, g)

	assert.Len(t, target.cells, 40*12)
	assert.Greater(t, target.hits, 0)
	fg, _, _ := target.plot.Decompose()
	assert.Equal(t, tcellColor(style.Plot), fg)
}
