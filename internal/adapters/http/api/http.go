// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/minerboard/internal/adapters/render/chart"
	service "github.com/okian/minerboard/internal/app"
	"github.com/okian/minerboard/internal/domain/model"
	"github.com/okian/minerboard/pkg/logger"
	"github.com/rs/cors"
)

// Runner executes one dashboard run per call.
type Runner interface {
	Run(ctx context.Context) (*service.Dashboard, error)
	Chart(ctx context.Context, column string) (model.Chart, string, error)
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	runner   Runner
	renderer *chart.Renderer
	logger   logger.Logger

	title       string
	insecure    bool
	corsOrigins []string

	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	dashboardHandler   *dashboardHandler
	leaderboardHandler *LeaderboardHandler
	chartHandler       *ChartHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		if title != "" {
			s.title = title
		}
	}
}

// WithRenderer sets the chart renderer.
func WithRenderer(r *chart.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithInsecureNotice shows a notice that the source certificate is not verified.
func WithInsecureNotice(insecure bool) Option {
	return func(s *Server) { s.insecure = insecure }
}

// WithCORSOrigins sets the origins allowed to call /api.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(runner Runner, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		runner:      runner,
		title:       "BASE mining Leaderboard",
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = chart.New()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("http")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.dashboardHandler = newDashboardHandler(runner, s.renderer, s.logger, s.title, s.insecure)
	s.leaderboardHandler = NewLeaderboardHandler(runner, s.logger)
	s.chartHandler = NewChartHandler(runner, s.renderer, s.logger)
	return s
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.HandleFunc("/", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard")).Methods(http.MethodGet)
	r.HandleFunc("/charts/{metric}.svg", MetricsMiddleware(s.chartHandler.HandleChart, "chart")).Methods(http.MethodGet)
	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/leaderboard", c.Handler(MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))).
		Methods(http.MethodGet, http.MethodOptions)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// writeJSON encodes v before any header is sent, so an unencodable value
// becomes a 500 instead of a truncated 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Get().Error(context.Background(), "encode response failed", logger.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Code: codeInternal, Message: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RunID: runIDOf(err)})
}

func runIDOf(err error) string {
	var fe *service.FetchError
	var se *service.ShapeError
	switch {
	case errors.As(err, &fe):
		return fe.RunID
	case errors.As(err, &se):
		return se.RunID
	}
	return ""
}
