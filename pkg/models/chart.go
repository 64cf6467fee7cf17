package models

import (
	"time"

	"github.com/RMahshie/loggraph/internal/chart"
	"github.com/RMahshie/loggraph/internal/eq"
)

// EQTarget describes a parametric equalizer curve to chart
type EQTarget struct {
	SampleRate float64   `json:"sample_rate,omitempty" doc:"Sample rate the filters are designed at, 48000 when omitted"`
	Points     int       `json:"points,omitempty" minimum:"0" maximum:"4096" doc:"Number of log-spaced evaluation points"`
	Bands      []eq.Band `json:"bands" minItems:"1" doc:"Filter bands applied in series"`
}

// ChartRequestBody names exactly one sample source plus the viewport
type ChartRequestBody struct {
	Frequencies []float64 `json:"frequencies,omitempty" doc:"Inline sample frequencies in Hz"`
	Gains       []float64 `json:"gains,omitempty" doc:"Inline sample gains in dB, one per frequency"`
	AnalysisID  string    `json:"analysis_id,omitempty" doc:"Chart the stored frequency response of an analysis"`
	ObjectKey   string    `json:"object_key,omitempty" doc:"Chart a sample document from the bucket"`
	EQ          *EQTarget `json:"eq,omitempty" doc:"Chart a parametric EQ target curve"`
	Demo        bool      `json:"demo,omitempty" doc:"Chart the built-in demo samples"`

	Width      int   `json:"width,omitempty" minimum:"0" maximum:"16384" doc:"Viewport width in pixels, server default when omitted"`
	Height     int   `json:"height,omitempty" minimum:"0" maximum:"16384" doc:"Viewport height in pixels, server default when omitted"`
	ShowLabels *bool `json:"show_labels,omitempty" doc:"Emit axis labels, server default when omitted"`
	Animate    bool  `json:"animate,omitempty" doc:"Ask the client to animate the plot in"`
}

// ChartLayoutRequest represents the request to lay out a chart
type ChartLayoutRequest struct {
	Body ChartRequestBody
}

// ChartLayoutResponse carries the computed geometry
type ChartLayoutResponse struct {
	Body *chart.Geometry
}

// ChartRenderRequest represents the request to render a chart
type ChartRenderRequest struct {
	Format string `query:"format" enum:"svg,png,text" default:"svg" doc:"Output format"`
	Body   ChartRequestBody
}

// AnalysisChartRequest represents the request to chart a stored analysis
type AnalysisChartRequest struct {
	ID     string `path:"id" doc:"Analysis ID"`
	Format string `query:"format" enum:"svg,png,text" default:"svg" doc:"Output format"`
	Width  int    `query:"width" minimum:"0" maximum:"16384" doc:"Viewport width in pixels"`
	Height int    `query:"height" minimum:"0" maximum:"16384" doc:"Viewport height in pixels"`
	Labels bool   `query:"labels" default:"true" doc:"Emit axis labels"`
}

// ChartImageResponse carries an encoded chart
type ChartImageResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}
