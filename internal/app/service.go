// Package service runs the dashboard pipeline: fetch, shape, derive,
// summarise and rank. Every Run is independent.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/minerboard/internal/domain/frame"
	"github.com/okian/minerboard/internal/domain/leaderboard"
	"github.com/okian/minerboard/internal/domain/model"
	"github.com/okian/minerboard/pkg/logger"
	"github.com/okian/minerboard/pkg/metrics"
)

// Fetcher returns the raw leaderboard body.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Dashboard is the result of one successful run.
type Dashboard struct {
	RunID     string
	FetchedAt time.Time
	*leaderboard.Board
}

// Service implements the dashboard run for the HTTP layer.
type Service struct {
	fetcher  Fetcher
	logger   logger.Logger
	now      func() time.Time
	newRunID func() string

	runs          atomic.Int64
	fetchFailures atomic.Int64
	shapeFailures atomic.Int64
	lastRows      atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRunIDs overrides run id generation.
func WithRunIDs(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.newRunID = next
		}
	}
}

// New constructs a Service reading from fetcher.
func New(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:  fetcher,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Run performs one fetch -> render pass. The returned error is a
// *FetchError or *ShapeError; no partial dashboard is returned with it.
func (s *Service) Run(ctx context.Context) (*Dashboard, error) {
	runID := s.newRunID()
	began := time.Now()
	start := s.now()
	log := s.logger.With(logger.String("run_id", runID))
	s.runs.Add(1)

	d, outcome, err := s.run(ctx, runID, start)
	metrics.RecordRun(outcome, float64(time.Since(began).Milliseconds()))
	if err != nil {
		log.Error(ctx, "dashboard run failed", logger.String("outcome", outcome), logger.Error(err))
		return nil, err
	}

	s.lastRows.Store(int64(d.Frame.Len()))
	metrics.UpdateLeaderboard(d.Frame.Len(), totals(d.Metrics))
	log.Info(ctx, "dashboard run finished",
		logger.Int("rows", d.Frame.Len()),
		logger.Any("dropped", d.Dropped),
		logger.Duration("elapsed", time.Since(began)))
	return d, nil
}

func (s *Service) run(ctx context.Context, runID string, start time.Time) (*Dashboard, string, error) {
	body, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.fetchFailures.Add(1)
		return nil, metrics.OutcomeFetchFailed, &FetchError{RunID: runID, Err: err}
	}

	f, err := frame.Decode(body)
	switch {
	case errors.Is(err, frame.ErrInvalidJSON), errors.Is(err, frame.ErrNotArray):
		// The body never parsed as a leaderboard: same class as a failed request.
		s.fetchFailures.Add(1)
		return nil, metrics.OutcomeFetchFailed, &FetchError{RunID: runID, Err: err}
	case err != nil:
		s.shapeFailures.Add(1)
		return nil, metrics.OutcomeShapeFailed, &ShapeError{RunID: runID, Err: fmt.Errorf("%w: %w", leaderboard.ErrShape, err)}
	}

	board, err := leaderboard.Build(f)
	if err != nil {
		s.shapeFailures.Add(1)
		return nil, metrics.OutcomeShapeFailed, &ShapeError{RunID: runID, Err: err}
	}

	return &Dashboard{RunID: runID, FetchedAt: start, Board: board}, metrics.OutcomeSuccess, nil
}

// Chart runs the pipeline and returns the chart for one metric column.
// Unknown columns fail with ErrUnknownChart before anything is fetched.
func (s *Service) Chart(ctx context.Context, column string) (model.Chart, string, error) {
	if _, ok := leaderboard.LookupMetric(column); !ok {
		return model.Chart{}, "", fmt.Errorf("%w: %q", ErrUnknownChart, column)
	}
	d, err := s.Run(ctx)
	if err != nil {
		return model.Chart{}, "", err
	}
	for _, c := range d.Charts {
		if c.Column == column {
			return c, d.RunID, nil
		}
	}
	return model.Chart{}, d.RunID, fmt.Errorf("%w: %q", ErrUnknownChart, column)
}

// GetStats returns run counters for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"runs":          s.runs.Load(),
		"fetchFailures": s.fetchFailures.Load(),
		"shapeFailures": s.shapeFailures.Load(),
		"lastRowCount":  s.lastRows.Load(),
	}
}

func totals(ms []model.Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Column] = m.Value
	}
	return out
}
