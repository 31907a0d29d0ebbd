package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/okian/minerboard/internal/adapters/http/api"
	"github.com/okian/minerboard/internal/adapters/http/site"
	"github.com/okian/minerboard/internal/adapters/http/swagger"
	"github.com/okian/minerboard/internal/adapters/render/chart"
	"github.com/okian/minerboard/internal/adapters/source"
	app "github.com/okian/minerboard/internal/app"
	"github.com/okian/minerboard/internal/config"
	"github.com/okian/minerboard/pkg/logger"
	"github.com/okian/minerboard/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 2 * time.Minute
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("minerboard: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	handler, _ := newHandler(ctx, cfg, log, os.Stdout)

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newHandler builds the dashboard service and the full HTTP handler chain for cfg.
func newHandler(ctx context.Context, cfg *config.Config, log logger.Logger, accessLog io.Writer) (http.Handler, *app.Service) {
	if cfg.SourceInsecureSkipVerify {
		log.Warn(ctx, "TLS certificate verification for the leaderboard source is disabled",
			logger.String("source_url", cfg.SourceURL))
	}

	src := source.New(cfg.SourceURL,
		source.WithInsecureSkipVerify(cfg.SourceInsecureSkipVerify),
		source.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		source.WithLogger(log.Named("source")),
	)
	svc := app.New(src, app.WithLogger(log.Named("service")))

	r := mux.NewRouter()
	swagger.Register(ctx, r)
	site.Register(ctx, r)
	api.NewServer(svc, svc,
		api.WithTitle(cfg.PageTitle),
		api.WithRenderer(chart.New(chart.WithSize(cfg.ChartWidth, cfg.ChartHeight))),
		api.WithInsecureNotice(cfg.SourceInsecureSkipVerify),
		api.WithCORSOrigins(cfg.CORSAllowedOrigins),
		api.WithLogger(log.Named("http")),
	).Register(ctx, r)

	var h http.Handler = r
	if cfg.AccessLog && accessLog != nil {
		h = handlers.CombinedLoggingHandler(accessLog, h)
	}
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{log}))(h)
	return h, svc
}

// recoveryLogger reports recovered handler panics through the structured logger.
type recoveryLogger struct {
	log logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error(context.Background(), "recovered from handler panic", logger.String("panic", fmt.Sprint(v...)))
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metrics.SystemRefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var avgPauseMs float64
	if m.NumGC > 0 {
		avgPauseMs = float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
	}
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine(), avgPauseMs)
}
