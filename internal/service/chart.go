// Package service resolves chart sample sources and drives the layout engine
// and renderers on behalf of the API and the terminal viewer.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/loggraph/internal/chart"
	"github.com/RMahshie/loggraph/internal/config"
	"github.com/RMahshie/loggraph/internal/eq"
	"github.com/RMahshie/loggraph/internal/render"
	"github.com/RMahshie/loggraph/internal/repository"
	"github.com/RMahshie/loggraph/internal/storage"
	"github.com/RMahshie/loggraph/pkg/models"
)

var (
	// ErrInvalidSource is returned when a request names more than one sample
	// source or a source that cannot produce samples
	ErrInvalidSource = errors.New("invalid sample source")
	// ErrSourceUnavailable is returned for a source the server is not configured for
	ErrSourceUnavailable = errors.New("sample source unavailable")
	// ErrNotFound is returned when the named analysis or object does not exist
	ErrNotFound = errors.New("samples not found")
)

// ChartService lays out and renders charts
type ChartService interface {
	Layout(ctx context.Context, req ChartRequest) (*chart.Geometry, error)
	Render(ctx context.Context, req ChartRequest, format render.Format) (*Rendered, error)
}

// Source names where the plot samples come from. At most one field may be
// set; none at all charts an empty grid.
type Source struct {
	Frequencies []float64
	Gains       []float64
	AnalysisID  string
	ObjectKey   string
	EQ          *models.EQTarget
	Demo        bool
}

// ChartRequest is one layout or render job. Zero Width or Height and a nil
// ShowLabels fall back to the configured defaults.
type ChartRequest struct {
	Source     Source
	Width      int
	Height     int
	ShowLabels *bool
	Animate    bool
}

// Rendered is an encoded chart
type Rendered struct {
	ContentType string
	Data        []byte
}

type chartService struct {
	engine  *chart.Engine
	results repository.ResultsRepository
	store   storage.SampleStore
	cfg     config.ChartConfig
	style   render.Style
}

// NewChartService creates a chart service. results and store may be nil when
// the database or bucket is not configured.
func NewChartService(engine *chart.Engine, results repository.ResultsRepository, store storage.SampleStore, cfg config.ChartConfig) ChartService {
	style := render.DefaultStyle()
	if cfg.StrokeWidth > 0 {
		style.StrokeWidth = cfg.StrokeWidth
	}
	if cfg.FontSize > 0 {
		style.FontSize = cfg.FontSize
	}

	return &chartService{
		engine:  engine,
		results: results,
		store:   store,
		cfg:     cfg,
		style:   style,
	}
}

// Layout resolves the samples and computes the chart geometry
func (s *chartService) Layout(ctx context.Context, req ChartRequest) (*chart.Geometry, error) {
	start := time.Now()

	freqs, gains, source, err := s.samples(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	width, height := req.Width, req.Height
	if width == 0 {
		width = s.cfg.Width
	}
	if height == 0 {
		height = s.cfg.Height
	}
	opts := chart.Options{ShowLabels: s.cfg.ShowLabels, AnimationEnabled: req.Animate}
	if req.ShowLabels != nil {
		opts.ShowLabels = *req.ShowLabels
	}

	if s.cfg.LayoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LayoutTimeout)
		defer cancel()
	}

	res := <-s.engine.LayoutAsync(ctx, width, height, freqs, gains, opts)
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("source", source).Int("width", width).Int("height", height).Msg("Chart layout failed")
		return nil, res.Err
	}

	log.Info().
		Str("source", source).
		Int("samples", len(freqs)).
		Int("width", width).
		Int("height", height).
		Dur("latency", time.Since(start)).
		Msg("Chart laid out")
	return res.Geometry, nil
}

// Render lays out the chart and encodes it in the given format
func (s *chartService) Render(ctx context.Context, req ChartRequest, format render.Format) (*Rendered, error) {
	r, err := render.New(format, s.style)
	if err != nil {
		return nil, err
	}

	g, err := s.Layout(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, g); err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", format, err)
	}

	return &Rendered{ContentType: r.ContentType(), Data: buf.Bytes()}, nil
}

// samples returns the plot samples and a short name of the source for logging
func (s *chartService) samples(ctx context.Context, src Source) ([]float64, []float64, string, error) {
	named := 0
	for _, set := range []bool{
		src.Frequencies != nil || src.Gains != nil,
		src.AnalysisID != "",
		src.ObjectKey != "",
		src.EQ != nil,
		src.Demo,
	} {
		if set {
			named++
		}
	}
	if named > 1 {
		return nil, nil, "", fmt.Errorf("%w: %d sources named, want one", ErrInvalidSource, named)
	}

	switch {
	case src.AnalysisID != "":
		freqs, gains, err := s.analysisSamples(ctx, src.AnalysisID)
		return freqs, gains, "analysis", err
	case src.ObjectKey != "":
		freqs, gains, err := s.objectSamples(ctx, src.ObjectKey)
		return freqs, gains, "object", err
	case src.EQ != nil:
		freqs, gains, err := s.eqSamples(src.EQ)
		return freqs, gains, "eq", err
	case src.Demo:
		return DemoFrequencies(), DemoGains(), "demo", nil
	}
	return src.Frequencies, src.Gains, "inline", nil
}

func (s *chartService) analysisSamples(ctx context.Context, id string) ([]float64, []float64, error) {
	if s.results == nil {
		return nil, nil, fmt.Errorf("%w: no database configured", ErrSourceUnavailable)
	}

	analysisID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: analysis id %q: %v", ErrInvalidSource, id, err)
	}

	points, err := s.results.GetFrequencyData(ctx, analysisID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: analysis %s", ErrNotFound, analysisID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load analysis results: %w", err)
	}

	freqs, gains := models.SplitPoints(points)
	return freqs, gains, nil
}

func (s *chartService) objectSamples(ctx context.Context, key string) ([]float64, []float64, error) {
	if s.store == nil {
		return nil, nil, fmt.Errorf("%w: no bucket configured", ErrSourceUnavailable)
	}

	freqs, gains, err := s.store.LoadSamples(ctx, key)
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		return nil, nil, fmt.Errorf("%w: object %s", ErrNotFound, key)
	case errors.Is(err, storage.ErrMalformedSamples):
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	case err != nil:
		return nil, nil, fmt.Errorf("failed to load samples: %w", err)
	}
	return freqs, gains, nil
}

func (s *chartService) eqSamples(target *models.EQTarget) ([]float64, []float64, error) {
	points := target.Points
	if points == 0 {
		points = s.cfg.EQPoints
	}

	d := s.engine.Domain()
	sampleRate := target.SampleRate
	if sampleRate == 0 {
		sampleRate = eq.DefaultSampleRate
	}
	if sampleRate <= 2*d.MaxFrequency {
		return nil, nil, fmt.Errorf("%w: sample rate %g Hz puts %g Hz at or above Nyquist", ErrInvalidSource, sampleRate, d.MaxFrequency)
	}
	freqs := eq.LogSpaced(points, d.MinFrequency, d.MaxFrequency)

	curve := eq.Curve{SampleRate: sampleRate, Bands: target.Bands}
	gains, err := curve.Response(freqs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	return freqs, gains, nil
}
