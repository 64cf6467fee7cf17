// Package render draws chart geometry. Every renderer follows the same
// contract: ruled gridlines span the full opposite axis, the plot is one
// connected polyline, and labels sit at their gridline position according to
// the gridline anchor (frequency labels along the bottom edge, gain labels
// along the left edge).
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/RMahshie/loggraph/internal/chart"
)

// ErrUnknownFormat is returned by New for an unsupported output format
var ErrUnknownFormat = errors.New("unknown render format")

// Format names an output encoding
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatText Format = "text"
)

// Renderer turns chart geometry into an encoded image
type Renderer interface {
	ContentType() string
	Render(w io.Writer, g *chart.Geometry) error
}

// Style holds the colours and stroke settings shared by all renderers
type Style struct {
	Background color.Color
	// Grid colours major gridlines and all labels
	Grid color.Color
	// GridDull colours minor gridlines and gain levels
	GridDull    color.Color
	Plot        color.Color
	StrokeWidth float64
	FontSize    float64
	LabelMargin float64
}

// DefaultStyle mirrors the dark handset theme: black background, grey grid, cyan plot
func DefaultStyle() Style {
	return Style{
		Background:  color.Black,
		Grid:        color.RGBA{R: 0xbd, G: 0xbd, B: 0xbd, A: 0xff},
		GridDull:    color.RGBA{R: 0x42, G: 0x42, B: 0x42, A: 0xff},
		Plot:        color.RGBA{R: 0x00, G: 0xe5, B: 0xff, A: 0xff},
		StrokeWidth: 3,
		FontSize:    12,
		LabelMargin: 4,
	}
}

// New returns the renderer for a format
func New(format Format, style Style) (Renderer, error) {
	switch format {
	case FormatSVG:
		return &SVGRenderer{Style: style}, nil
	case FormatPNG:
		return NewPNGRenderer(style)
	case FormatText:
		return &TerminalRenderer{Style: style}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func (s Style) lineColor(t chart.Tier) color.Color {
	if t == chart.TierMajor {
		return s.Grid
	}
	return s.GridDull
}

// labelBaseline keeps text that hangs above its position inside the image.
func (s Style) labelBaseline(y float64) float64 {
	if y < s.FontSize {
		return s.FontSize
	}
	return y
}
