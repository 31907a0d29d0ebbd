package mocksource

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/okian/minerboard/pkg/logger"
)

// ErrConfig reports an unusable mock source configuration.
var ErrConfig = errors.New("invalid mock source config")

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch {
	case c.Rows < 0:
		return fmt.Errorf("%w: rows must be >= 0", ErrConfig)
	case c.NFTShare < 0 || c.NFTShare > 1:
		return fmt.Errorf("%w: nft share must be within [0,1]", ErrConfig)
	case (c.CertFile == "") != (c.KeyFile == ""):
		return fmt.Errorf("%w: cert and key must be set together", ErrConfig)
	}
	return nil
}

// NewRouter generates the entries for config and returns the router serving them.
func NewRouter(config *Config) (*mux.Router, []Entry, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	entries := Generate(rand.New(rand.NewSource(seed)), config.Rows, config.NFTShare)

	h, err := NewHandler(entries, config.Fail)
	if err != nil {
		return nil, nil, err
	}
	r := mux.NewRouter()
	h.Register(r)
	return r, entries, nil
}

// Run serves the mock source until ctx is done. When ready is non-nil it
// receives the bound address once the listener is open.
func Run(ctx context.Context, config *Config, ready chan<- string) error {
	if err := config.Validate(); err != nil {
		return err
	}
	log := logger.Get().Named("mock-source")

	r, entries, err := NewRouter(config)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}
	blocks, earned, hashes := Totals(entries)
	log.Info(ctx, "generated leaderboard",
		logger.Int("rows", len(entries)),
		logger.Int("totalBlocksWon", blocks),
		logger.Float64("totalCryptoEarned", earned),
		logger.Int("totalHashesSubmitted", hashes),
		logger.Bool("fail", config.Fail))

	ln, err := net.Listen("tcp", config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", config.Addr, err)
	}

	srv := &http.Server{
		Handler:           handlers.RecoveryHandler()(r),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	tls := config.CertFile != ""

	errCh := make(chan error, 1)
	go func() {
		if tls {
			errCh <- srv.ServeTLS(ln, config.CertFile, config.KeyFile)
			return
		}
		errCh <- srv.Serve(ln)
	}()

	addr := ln.Addr().String()
	log.Info(ctx, "serving mock leaderboard", logger.String("addr", addr), logger.Bool("tls", tls))
	if ready != nil {
		ready <- addr
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
