package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/minerboard/internal/adapters/render/chart"
	"github.com/okian/minerboard/pkg/logger"
	"github.com/okian/minerboard/pkg/metrics"
)

// ChartHandler serves one chart as a standalone SVG.
type ChartHandler struct {
	runner   Runner
	renderer *chart.Renderer
	logger   logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(runner Runner, renderer *chart.Renderer, l logger.Logger) *ChartHandler {
	return &ChartHandler{runner: runner, renderer: renderer, logger: l}
}

// HandleChart handles GET /charts/{metric}.svg requests.
func (h *ChartHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	column := mux.Vars(r)["metric"]

	c, runID, err := h.runner.Chart(r.Context(), column)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}

	svg, err := h.renderer.SVG(c)
	if err != nil {
		metrics.RecordChartRenderError()
		h.logger.Error(r.Context(), "chart render failed",
			logger.String("run_id", runID), logger.String("chart", column), logger.Error(err))
		writeError(w, http.StatusInternalServerError, codeRender, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Run-Id", runID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}
