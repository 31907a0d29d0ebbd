package api

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/okian/minerboard/internal/adapters/render/chart"
	"github.com/okian/minerboard/internal/domain/model"
	"github.com/okian/minerboard/pkg/logger"
	"github.com/okian/minerboard/pkg/metrics"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type pageView struct {
	Title    string
	Insecure bool
	RunID    string
	Error    string
	Table    tableView
	Metrics  []model.Metric
	Charts   []chartView
}

type chartView struct {
	Column string
	Title  string
	SVG    template.HTML
}

// dashboardHandler renders the dashboard page.
type dashboardHandler struct {
	runner   Runner
	renderer *chart.Renderer
	logger   logger.Logger
	title    string
	insecure bool
}

func newDashboardHandler(runner Runner, renderer *chart.Renderer, l logger.Logger, title string, insecure bool) *dashboardHandler {
	return &dashboardHandler{runner: runner, renderer: renderer, logger: l, title: title, insecure: insecure}
}

// HandleDashboard handles GET / requests. Each request is one full run;
// a failed run renders only the error.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	view := pageView{Title: h.title, Insecure: h.insecure}
	status := http.StatusOK

	if err := h.fill(r.Context(), &view); err != nil {
		status, _ = classify(err)
		view = pageView{Title: h.title, Insecure: h.insecure, RunID: runIDOf(err), Error: err.Error()}
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, view); err != nil {
		h.logger.Error(r.Context(), "dashboard template failed", logger.Error(err))
		http.Error(w, fmt.Errorf("%w: %w", ErrTemplate, err).Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *dashboardHandler) fill(ctx context.Context, view *pageView) error {
	d, err := h.runner.Run(ctx)
	if err != nil {
		return err
	}

	charts := make([]chartView, 0, len(d.Charts))
	for _, c := range d.Charts {
		svg, err := h.renderer.SVG(c)
		if err != nil {
			metrics.RecordChartRenderError()
			h.logger.Error(ctx, "chart render failed",
				logger.String("run_id", d.RunID), logger.String("chart", c.Column), logger.Error(err))
			return err
		}
		// The renderer escapes every text node it emits.
		charts = append(charts, chartView{Column: c.Column, Title: c.Title, SVG: template.HTML(svg)}) //nolint:gosec
	}

	view.RunID = d.RunID
	view.Table = newTableView(d.Frame)
	view.Metrics = d.Metrics
	view.Charts = charts
	return nil
}
