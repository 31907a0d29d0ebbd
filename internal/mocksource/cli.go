package mocksource

import "os"

// ShowHelp prints usage information for the mock source.
func ShowHelp() {
	os.Stdout.WriteString(`minerboard mock leaderboard source
==================================

Serves randomly generated leaderboard entries at GET /leaderboard so the
dashboard can be run without the remote source.

Usage:
  go run ./cmd/mock-source [options]

Options:
  -addr string
        Listen address (default "127.0.0.1:9191")
  -rows int
        Number of entries to generate (default 25)
  -nft float
        Share of entries carrying nft_multiplier (default 0.3)
  -seed int
        Generator seed, 0 for a random one
  -cert string
        TLS certificate file; serves plain HTTP when empty
  -key string
        TLS key file
  -fail
        Answer every request with HTTP 500
  -help
        Show this help message

Examples:
  # Plain HTTP source for local development
  go run ./cmd/mock-source -rows 40
  MINERBOARD_SOURCE_URL=http://127.0.0.1:9191/leaderboard go run ./cmd

  # Exercise the dashboard error path
  go run ./cmd/mock-source -fail
`)
}
