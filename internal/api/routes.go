package api

import (
	"net/http"

	"github.com/RMahshie/loggraph/internal/api/handlers"
	"github.com/RMahshie/loggraph/internal/service"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, charts service.ChartService) {
	// Initialize handlers
	chartHandler := handlers.NewChartHandler(charts)

	// Register chart routes
	huma.Register(api, huma.Operation{
		OperationID: "layoutChart",
		Method:      http.MethodPost,
		Path:        "/api/charts/layout",
		Summary:     "Lay out a chart",
		Description: "Computes gridlines and plot geometry for a log-frequency response chart",
		Tags:        []string{"Charts"},
	}, chartHandler.LayoutChart)

	huma.Register(api, huma.Operation{
		OperationID: "renderChart",
		Method:      http.MethodPost,
		Path:        "/api/charts/render",
		Summary:     "Render a chart",
		Description: "Lays out a chart and returns it as SVG, PNG or plain text",
		Tags:        []string{"Charts"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Encoded chart",
				Content: map[string]*huma.MediaType{
					"image/svg+xml": {},
					"image/png":     {},
					"text/plain":    {},
				},
			},
		},
	}, chartHandler.RenderChart)

	huma.Register(api, huma.Operation{
		OperationID: "getAnalysisChart",
		Method:      http.MethodGet,
		Path:        "/api/analyses/{id}/chart",
		Summary:     "Chart analysis results",
		Description: "Renders the stored frequency response of a completed analysis",
		Tags:        []string{"Analysis"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Encoded chart",
				Content: map[string]*huma.MediaType{
					"image/svg+xml": {},
					"image/png":     {},
					"text/plain":    {},
				},
			},
		},
	}, chartHandler.GetAnalysisChart)
}
