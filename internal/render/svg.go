package render

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/RMahshie/loggraph/internal/chart"
)

// SVGRenderer writes charts as standalone SVG documents
type SVGRenderer struct {
	Style Style
}

func (r *SVGRenderer) ContentType() string {
	return "image/svg+xml"
}

func (r *SVGRenderer) Render(w io.Writer, g *chart.Geometry) error {
	s := r.Style
	out := &svgWriter{w: w}
	width, height := float64(g.Width), float64(g.Height)

	out.printf("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		g.Width, g.Height, g.Width, g.Height)
	out.printf("<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", colorToCSS(s.Background))

	out.printf("<g stroke-width=\"1\">\n")
	for _, gl := range g.Vertical {
		if gl.Ruled {
			out.line(gl.Position, 0, gl.Position, height, s.lineColor(gl.Tier))
		}
	}
	for _, gl := range g.Horizontal {
		if gl.Ruled {
			out.line(0, gl.Position, width, gl.Position, s.GridDull)
		}
	}
	out.printf("</g>\n")

	out.printf("<g font-family=\"sans-serif\" font-size=\"%v\" fill=\"%s\">\n", svglen(s.FontSize), colorToCSS(s.Grid))
	for _, gl := range g.Vertical {
		if gl.Label != "" {
			out.text(gl.Position+labelShift(gl.Anchor, s.LabelMargin), height-s.LabelMargin, gl.Anchor, gl.Label)
		}
	}
	for _, gl := range g.Horizontal {
		if gl.Label != "" {
			out.text(0, s.labelBaseline(gl.Position), chart.AnchorStart, gl.Label)
		}
	}
	out.printf("</g>\n")

	if len(g.Vertices) > 0 {
		points := make([]string, len(g.Vertices))
		for i, v := range g.Vertices {
			points[i] = svglen(v.X).String() + "," + svglen(v.Y).String()
		}
		out.printf("<polyline points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%v\" stroke-linecap=\"round\" stroke-linejoin=\"round\"/>\n",
			strings.Join(points, " "), colorToCSS(s.Plot), svglen(s.StrokeWidth))
	}

	out.printf("</svg>\n")
	return out.err
}

// labelShift nudges boundary labels inward so they do not touch the edge.
func labelShift(a chart.Anchor, margin float64) float64 {
	switch a {
	case chart.AnchorStart:
		return margin
	case chart.AnchorEnd:
		return -margin
	}
	return 0
}

type svgWriter struct {
	w   io.Writer
	err error
}

type svglen float64

func (v svglen) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

func colorToCSS(c color.Color) string {
	cc := color.NRGBAModel.Convert(c).(color.NRGBA)
	if cc.A == 0xff {
		return fmt.Sprintf("rgb(%d,%d,%d)", cc.R, cc.G, cc.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%f)", cc.R, cc.G, cc.B, float64(cc.A)/0xff)
}

func (s *svgWriter) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svgWriter) line(x1, y1, x2, y2 float64, c color.Color) {
	s.printf("<line x1=\"%v\" y1=\"%v\" x2=\"%v\" y2=\"%v\" stroke=\"%s\"/>\n",
		svglen(x1), svglen(y1), svglen(x2), svglen(y2), colorToCSS(c))
}

func (s *svgWriter) text(x, y float64, a chart.Anchor, text string) {
	anchor := ""
	if a != chart.AnchorStart {
		anchor = fmt.Sprintf(" text-anchor=\"%s\"", a)
	}
	s.printf("<text x=\"%v\" y=\"%v\"%s>", svglen(x), svglen(y), anchor)
	if s.err == nil {
		s.err = xml.EscapeText(s.w, []byte(text))
	}
	s.printf("</text>\n")
}
