package chart

import (
	"context"
	"fmt"
	"math"
)

// MaxViewport bounds each viewport dimension in pixels
const MaxViewport = 16384

// Engine lays out frequency response charts over a fixed Domain. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	domain Domain
}

// NewEngine creates an engine for the given domain
func NewEngine(d Domain) (*Engine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	d.MajorMarks = append([]float64(nil), d.MajorMarks...)
	d.MinorMarks = append([]float64(nil), d.MinorMarks...)
	d.LabeledMinorMarks = append([]float64(nil), d.LabeledMinorMarks...)
	return &Engine{domain: d}, nil
}

// Domain returns the engine's axis configuration
func (e *Engine) Domain() Domain {
	return e.domain
}

// Layout computes gridlines and the plot polyline for a viewport of
// width x height pixels. frequencies[i] and gains[i] form one sample.
// The context is checked between iterations; a cancelled pass returns
// ctx.Err() and no geometry.
func (e *Engine) Layout(ctx context.Context, width, height int, frequencies, gains []float64, opts Options) (*Geometry, error) {
	if width <= 0 || height <= 0 || width > MaxViewport || height > MaxViewport {
		return nil, fmt.Errorf("%w: %dx%d, each side must be in [1, %d]", ErrInvalidViewport, width, height, MaxViewport)
	}
	if len(frequencies) != len(gains) {
		return nil, fmt.Errorf("%w: %d frequencies, %d gains", ErrMismatchedSampleLengths, len(frequencies), len(gains))
	}
	for i := range frequencies {
		if !finite(frequencies[i]) || !finite(gains[i]) {
			return nil, fmt.Errorf("%w: sample %d is (%g Hz, %g dB)", ErrInvalidSample, i, frequencies[i], gains[i])
		}
	}

	table, err := BuildFrequencyTable(width, e.domain)
	if err != nil {
		return nil, err
	}

	g := &Geometry{
		Width:   width,
		Height:  height,
		Animate: opts.AnimationEnabled,
	}

	if g.Vertical, err = e.frequencyGridlines(ctx, table, opts); err != nil {
		return nil, err
	}
	if g.Horizontal, err = e.gainGridlines(ctx, height, opts); err != nil {
		return nil, err
	}
	if g.Vertices, err = e.plot(ctx, table, height, frequencies, gains); err != nil {
		return nil, err
	}
	g.Segments = connect(g.Vertices)

	return g, nil
}

func (e *Engine) frequencyGridlines(ctx context.Context, table FrequencyTable, opts Options) ([]Gridline, error) {
	d := e.domain
	lowest, highest := bounds(d.MajorMarks)

	lines := make([]Gridline, 0, len(d.MajorMarks)+len(d.MinorMarks))
	for _, f := range d.MajorMarks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gl := Gridline{
			Position: float64(table.Column(f)),
			Value:    f,
			Tier:     TierMajor,
			Ruled:    f != lowest && f != highest,
			Anchor:   AnchorMiddle,
		}
		switch f {
		case lowest:
			gl.Anchor = AnchorStart
		case highest:
			gl.Anchor = AnchorEnd
		}
		if opts.ShowLabels {
			gl.Label = FormatFrequency(f)
		}
		lines = append(lines, gl)
	}

	for _, f := range d.MinorMarks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gl := Gridline{
			Position: float64(table.Column(f)),
			Value:    f,
			Tier:     TierMinor,
			Ruled:    true,
			Anchor:   AnchorMiddle,
		}
		if opts.ShowLabels && d.isLabeledMinor(f) {
			gl.Label = FormatFrequency(f)
		}
		lines = append(lines, gl)
	}
	return lines, nil
}

// gainGridlines spreads the gain levels evenly over the height. The top
// edge carries the unit label only. The band height is not truncated to
// whole pixels, so the lowest level sits on the bottom edge (200 for a
// 200 pixel height, where integer division would leave it at 198).
func (e *Engine) gainGridlines(ctx context.Context, height int, opts Options) ([]Gridline, error) {
	levels := e.domain.GainLevels()
	band := float64(height) / float64(len(levels)-1)

	lines := make([]Gridline, 0, len(levels))
	for i, level := range levels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gl := Gridline{
			Position: float64(i) * band,
			Value:    level,
			Tier:     TierMinor,
			Ruled:    i > 0,
			Anchor:   AnchorStart,
		}
		if opts.ShowLabels {
			gl.Label = FormatGain(level, i, len(levels))
		}
		lines = append(lines, gl)
	}
	return lines, nil
}

func (e *Engine) plot(ctx context.Context, table FrequencyTable, height int, frequencies, gains []float64) ([]Vertex, error) {
	h := float64(height)
	vertices := make([]Vertex, 0, len(frequencies))
	for i := range frequencies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		y, err := Scale(e.domain.GainMin, e.domain.GainMax, 0, h, gains[i])
		if err != nil {
			return nil, err
		}
		if !finite(y) {
			return nil, fmt.Errorf("%w: gain %g dB overflows the axis", ErrInvalidSample, gains[i])
		}
		vertices = append(vertices, Vertex{
			X: float64(table.Column(frequencies[i])),
			Y: h - y,
		})
	}
	return vertices, nil
}

// connect joins consecutive vertices. The last vertex is joined to itself.
func connect(vertices []Vertex) []Segment {
	segments := make([]Segment, len(vertices))
	for i, v := range vertices {
		next := v
		if i+1 < len(vertices) {
			next = vertices[i+1]
		}
		segments[i] = Segment{From: v, To: next}
	}
	return segments
}

func bounds(xs []float64) (lo, hi float64) {
	for i, x := range xs {
		if i == 0 || x < lo {
			lo = x
		}
		if i == 0 || x > hi {
			hi = x
		}
	}
	return lo, hi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
