// Package model contains domain models passed between layers.
package model

// Source column names of a leaderboard row.
const (
	ColWalletAddr      = "wallet_addr"
	ColBlocksWon       = "blocks_won"
	ColCryptoPaid      = "crypto_paid"
	ColCryptoPending   = "crypto_pending"
	ColHashesSubmitted = "hashes_submitted"
	ColNFTMultiplier   = "nft_multiplier"

	// ColCryptoEarned is derived: crypto_paid + crypto_pending.
	ColCryptoEarned = "crypto_earned"
)

// Entry is one miner's typed stats after the derive step.
type Entry struct {
	WalletAddr      string  `json:"wallet_addr"`
	BlocksWon       float64 `json:"blocks_won"`
	CryptoPaid      float64 `json:"crypto_paid"`
	CryptoPending   float64 `json:"crypto_pending"`
	CryptoEarned    float64 `json:"crypto_earned"`
	HashesSubmitted float64 `json:"hashes_submitted"`
}

// Value returns the entry's value for one of the charted columns.
func (e Entry) Value(column string) (float64, bool) {
	switch column {
	case ColBlocksWon:
		return e.BlocksWon, true
	case ColCryptoPaid:
		return e.CryptoPaid, true
	case ColCryptoPending:
		return e.CryptoPending, true
	case ColCryptoEarned:
		return e.CryptoEarned, true
	case ColHashesSubmitted:
		return e.HashesSubmitted, true
	default:
		return 0, false
	}
}

// Metric is one labeled aggregate shown in the Key Metrics row.
type Metric struct {
	Column string  `json:"column"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	// Display is Value formatted for the column's dtype (2 vs 2.0).
	Display string `json:"display"`
}

// Bar is one horizontal bar of a chart.
type Bar struct {
	Label      string  `json:"label"`
	WalletAddr string  `json:"wallet_addr"`
	Value      float64 `json:"value"`
}

// Chart is a ranked bar series for one metric.
type Chart struct {
	Column string `json:"column"`
	Title  string `json:"title"`
	XTitle string `json:"x_title"`
	YTitle string `json:"y_title"`
	Bars   []Bar  `json:"bars"`
}
