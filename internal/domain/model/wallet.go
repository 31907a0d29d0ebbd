package model

import "unicode/utf8"

// Wallet label truncation.
const (
	shortWalletMax    = 12
	shortWalletPrefix = 7
	shortWalletSuffix = 5
	shortWalletJoin   = "..."
)

// ShortWalletAddr shortens addresses longer than 12 characters to the first
// 7 characters, "..." and the last 5. Lengths count runes, not bytes.
func ShortWalletAddr(addr string) string {
	if utf8.RuneCountInString(addr) <= shortWalletMax {
		return addr
	}
	r := []rune(addr)
	return string(r[:shortWalletPrefix]) + shortWalletJoin + string(r[len(r)-shortWalletSuffix:])
}
