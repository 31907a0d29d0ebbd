package mocksource

import (
	"fmt"
	"math"
	"math/rand"
)

// Ranges of generated values.
const (
	maxBlocksWon       = 60
	maxCryptoMilli     = 250_000
	hashesPerBlock     = 5_000
	maxExtraHashes     = 40_000
	nftMultiplierMin   = 1.0
	nftMultiplierRange = 1.5
	walletHexDigits    = 40
)

// Generate returns n random leaderboard entries from rng. Every wallet
// address is unique; a share of the rows carry nft_multiplier.
func Generate(rng *rand.Rand, n int, nftShare float64) []Entry {
	entries := make([]Entry, n)
	seen := make(map[string]struct{}, n)
	for i := range entries {
		var addr string
		for {
			addr = walletAddr(rng)
			if _, dup := seen[addr]; !dup {
				break
			}
		}
		seen[addr] = struct{}{}

		blocks := rng.Intn(maxBlocksWon + 1)
		e := Entry{
			WalletAddr:      addr,
			BlocksWon:       blocks,
			CryptoPaid:      milli(rng.Intn(maxCryptoMilli)),
			CryptoPending:   milli(rng.Intn(maxCryptoMilli / 10)),
			HashesSubmitted: blocks*hashesPerBlock + rng.Intn(maxExtraHashes),
		}
		if rng.Float64() < nftShare {
			m := math.Round((nftMultiplierMin+rng.Float64()*nftMultiplierRange)*100) / 100
			e.NFTMultiplier = &m
		}
		entries[i] = e
	}
	return entries
}

func walletAddr(rng *rand.Rand) string {
	const hexDigits = "0123456789abcdef"
	b := make([]byte, walletHexDigits)
	for i := range b {
		b[i] = hexDigits[rng.Intn(len(hexDigits))]
	}
	return fmt.Sprintf("0x%s", b)
}

// milli keeps amounts on a 0.001 grid; a fractional part is forced so the
// column stays float-typed.
func milli(n int) float64 {
	if n%1000 == 0 {
		n++
	}
	return float64(n) / 1000
}

// Totals returns the key metric sums a dashboard should show for entries.
func Totals(entries []Entry) (blocks int, earned float64, hashes int) {
	for _, e := range entries {
		blocks += e.BlocksWon
		earned += e.CryptoPaid + e.CryptoPending
		hashes += e.HashesSubmitted
	}
	return blocks, earned, hashes
}
