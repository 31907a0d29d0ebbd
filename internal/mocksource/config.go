// Package mocksource is a local stand-in for the remote leaderboard source.
package mocksource

import "time"

// Default configuration constants.
const (
	DefaultAddr     = "127.0.0.1:9191"
	DefaultRows     = 25
	DefaultNFTShare = 0.3

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Config holds configuration for the mock source.
type Config struct {
	Addr     string  // Listen address
	Rows     int     // Number of leaderboard entries to generate
	NFTShare float64 // Fraction of entries carrying nft_multiplier
	Seed     int64   // Generator seed; 0 picks one from the clock
	CertFile string  // TLS certificate; TLS is off when empty
	KeyFile  string  // TLS key
	Fail     bool    // Answer every request with HTTP 500
}

// Entry is one generated leaderboard row in the source's wire format.
type Entry struct {
	WalletAddr      string   `json:"wallet_addr"`
	BlocksWon       int      `json:"blocks_won"`
	CryptoPaid      float64  `json:"crypto_paid"`
	CryptoPending   float64  `json:"crypto_pending"`
	HashesSubmitted int      `json:"hashes_submitted"`
	NFTMultiplier   *float64 `json:"nft_multiplier,omitempty"`
}
