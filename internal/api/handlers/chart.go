package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/loggraph/internal/chart"
	"github.com/RMahshie/loggraph/internal/eq"
	"github.com/RMahshie/loggraph/internal/render"
	"github.com/RMahshie/loggraph/internal/service"
	"github.com/RMahshie/loggraph/pkg/models"
)

// ChartHandler handles chart layout and rendering requests
type ChartHandler struct {
	charts service.ChartService
}

// NewChartHandler creates a new chart handler
func NewChartHandler(charts service.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts}
}

// LayoutChart returns the chart geometry as JSON
func (h *ChartHandler) LayoutChart(ctx context.Context, req *models.ChartLayoutRequest) (*models.ChartLayoutResponse, error) {
	g, err := h.charts.Layout(ctx, toChartRequest(req.Body))
	if err != nil {
		return nil, chartError(err)
	}
	return &models.ChartLayoutResponse{Body: g}, nil
}

// RenderChart returns the chart encoded as an image
func (h *ChartHandler) RenderChart(ctx context.Context, req *models.ChartRenderRequest) (*models.ChartImageResponse, error) {
	out, err := h.charts.Render(ctx, toChartRequest(req.Body), render.Format(req.Format))
	if err != nil {
		return nil, chartError(err)
	}
	return &models.ChartImageResponse{ContentType: out.ContentType, Body: out.Data}, nil
}

// GetAnalysisChart renders the stored frequency response of an analysis
func (h *ChartHandler) GetAnalysisChart(ctx context.Context, req *models.AnalysisChartRequest) (*models.ChartImageResponse, error) {
	log.Info().Str("analysisID", req.ID).Str("format", req.Format).Msg("Analysis chart request received")

	labels := req.Labels
	out, err := h.charts.Render(ctx, service.ChartRequest{
		Source:     service.Source{AnalysisID: req.ID},
		Width:      req.Width,
		Height:     req.Height,
		ShowLabels: &labels,
	}, render.Format(req.Format))
	if err != nil {
		return nil, chartError(err)
	}
	return &models.ChartImageResponse{ContentType: out.ContentType, Body: out.Data}, nil
}

func toChartRequest(b models.ChartRequestBody) service.ChartRequest {
	return service.ChartRequest{
		Source: service.Source{
			Frequencies: b.Frequencies,
			Gains:       b.Gains,
			AnalysisID:  b.AnalysisID,
			ObjectKey:   b.ObjectKey,
			EQ:          b.EQ,
			Demo:        b.Demo,
		},
		Width:      b.Width,
		Height:     b.Height,
		ShowLabels: b.ShowLabels,
		Animate:    b.Animate,
	}
}

// chartError maps service and engine errors to HTTP errors
func chartError(err error) error {
	switch {
	case errors.Is(err, render.ErrUnknownFormat):
		return huma.Error400BadRequest("Unsupported chart format", err)
	case errors.Is(err, chart.ErrInvalidViewport):
		return huma.Error422UnprocessableEntity("Chart width and height must be between 1 and 16384", err)
	case errors.Is(err, chart.ErrMismatchedSampleLengths):
		return huma.Error422UnprocessableEntity("Frequencies and gains must have the same length", err)
	case errors.Is(err, chart.ErrInvalidSample):
		return huma.Error422UnprocessableEntity("Samples must be finite and fit the gain axis", err)
	case errors.Is(err, eq.ErrInvalidBand), errors.Is(err, service.ErrInvalidSource):
		return huma.Error422UnprocessableEntity("Invalid sample source", err)
	case errors.Is(err, service.ErrNotFound):
		return huma.Error404NotFound("Samples not found", err)
	case errors.Is(err, service.ErrSourceUnavailable):
		return huma.Error503ServiceUnavailable("Sample source not configured", err)
	case errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout("Chart layout timed out", err)
	}

	log.Error().Err(err).Msg("Chart request failed")
	return huma.Error500InternalServerError("Failed to build chart", err)
}
