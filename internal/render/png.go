package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/raster"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/RMahshie/loggraph/internal/chart"
)

// PNGRenderer rasterizes charts. Labels use the embedded Go Regular font.
type PNGRenderer struct {
	Style Style
	font  *truetype.Font
}

// NewPNGRenderer creates a PNG renderer with the given style
func NewPNGRenderer(style Style) (*PNGRenderer, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	return &PNGRenderer{Style: style, font: f}, nil
}

func (r *PNGRenderer) ContentType() string {
	return "image/png"
}

func (r *PNGRenderer) Render(w io.Writer, g *chart.Geometry) error {
	img, err := r.Draw(g)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Draw paints the chart: background, gridlines, labels, then the plot on top
func (r *PNGRenderer) Draw(g *chart.Geometry) (*image.RGBA, error) {
	s := r.Style
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	fill(img, img.Bounds(), s.Background)

	for _, gl := range g.Vertical {
		if gl.Ruled {
			x := px(gl.Position)
			fill(img, image.Rect(x, 0, x+1, g.Height), s.lineColor(gl.Tier))
		}
	}
	for _, gl := range g.Horizontal {
		if gl.Ruled {
			y := px(gl.Position)
			fill(img, image.Rect(0, y, g.Width, y+1), s.GridDull)
		}
	}

	if err := r.labels(img, g); err != nil {
		return nil, err
	}
	r.plot(img, g)
	return img, nil
}

func (r *PNGRenderer) labels(img *image.RGBA, g *chart.Geometry) error {
	s := r.Style

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(r.font)
	ctx.SetFontSize(s.FontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(s.Grid))

	face := truetype.NewFace(r.font, &truetype.Options{Size: s.FontSize, DPI: 72})
	defer face.Close()

	drawLabel := func(x, y float64, a chart.Anchor, label string) error {
		width := float64(font.MeasureString(face, label)) / 64
		switch a {
		case chart.AnchorMiddle:
			x -= width / 2
		case chart.AnchorEnd:
			x -= width
		}
		_, err := ctx.DrawString(label, fixed.Point26_6{X: toFixed(x), Y: toFixed(y)})
		return err
	}

	for _, gl := range g.Vertical {
		if gl.Label == "" {
			continue
		}
		x := gl.Position + labelShift(gl.Anchor, s.LabelMargin)
		if err := drawLabel(x, float64(g.Height)-s.LabelMargin, gl.Anchor, gl.Label); err != nil {
			return fmt.Errorf("failed to draw label %q: %w", gl.Label, err)
		}
	}
	for _, gl := range g.Horizontal {
		if gl.Label == "" {
			continue
		}
		if err := drawLabel(0, s.labelBaseline(gl.Position), chart.AnchorStart, gl.Label); err != nil {
			return fmt.Errorf("failed to draw label %q: %w", gl.Label, err)
		}
	}
	return nil
}

// plot strokes the vertices as one polyline with round caps and joins.
// Repeated points, including the closing self-segment, add nothing.
func (r *PNGRenderer) plot(img *image.RGBA, g *chart.Geometry) {
	var (
		path raster.Path
		last fixed.Point26_6
		n    int
	)
	for _, v := range g.Vertices {
		p := fixed.Point26_6{X: toFixed(v.X), Y: toFixed(v.Y)}
		switch {
		case n == 0:
			path.Start(p)
		case p == last:
			continue
		default:
			path.Add1(p)
		}
		last = p
		n++
	}
	if n < 2 {
		return
	}

	rz := raster.NewRasterizer(g.Width, g.Height)
	rz.UseNonZeroWinding = true
	raster.Stroke(rz, path, toFixed(r.Style.StrokeWidth), raster.RoundCapper, raster.RoundJoiner)

	painter := raster.NewRGBAPainter(img)
	painter.SetColor(r.Style.Plot)
	rz.Rasterize(painter)
}

func fill(img draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func px(v float64) int {
	return int(math.Round(v))
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
