// Package leaderboard turns a decoded source response into the dashboard's
// table, totals and ranked charts.
package leaderboard

import (
	"fmt"
	"strconv"

	"github.com/okian/minerboard/internal/domain/frame"
	"github.com/okian/minerboard/internal/domain/model"
)

// MetricSpec describes one summed and charted column.
type MetricSpec struct {
	Column     string
	Label      string
	ChartTitle string
	AxisTitle  string
}

// WalletAxisTitle labels the category axis of every chart.
const WalletAxisTitle = "Wallet Address"

// Metrics lists the summed and charted columns in display order.
var Metrics = []MetricSpec{
	{Column: model.ColBlocksWon, Label: "Total Blocks Won", ChartTitle: "Blocks Won per Wallet Address", AxisTitle: "Blocks Won"},
	{Column: model.ColCryptoEarned, Label: "Total Crypto Earned", ChartTitle: "Crypto Earned per Wallet Address", AxisTitle: "Crypto Earned"},
	{Column: model.ColHashesSubmitted, Label: "Total Hashes Submitted", ChartTitle: "Hashes Submitted per Wallet Address", AxisTitle: "Hashes Submitted"},
}

// LookupMetric finds a MetricSpec by column name.
func LookupMetric(column string) (MetricSpec, bool) {
	for _, m := range Metrics {
		if m.Column == column {
			return m, true
		}
	}
	return MetricSpec{}, false
}

// Board is the fully shaped result of one run.
type Board struct {
	// Frame is the raw table: optional columns dropped, crypto_earned appended.
	Frame *frame.Frame
	// Dropped lists optional columns removed from the table.
	Dropped []string
	Entries []model.Entry
	Metrics []model.Metric
	Charts  []model.Chart
}

// Build shapes a decoded frame in place and computes totals and charts.
func Build(f *frame.Frame) (*Board, error) {
	b := &Board{Frame: f}
	if Shape(f) {
		b.Dropped = append(b.Dropped, model.ColNFTMultiplier)
	}
	if err := Derive(f); err != nil {
		return nil, err
	}
	metrics, err := Totals(f)
	if err != nil {
		return nil, err
	}
	b.Metrics = metrics

	entries, err := Entries(f)
	if err != nil {
		return nil, err
	}
	b.Entries = entries
	b.Charts = Charts(entries)
	return b, nil
}

// Shape drops the optional nft_multiplier column. It reports whether the
// column was present.
func Shape(f *frame.Frame) bool {
	return f.Drop(model.ColNFTMultiplier)
}

// Derive appends crypto_earned = crypto_paid + crypto_pending. The derived
// column is integer-typed only when both inputs are.
func Derive(f *frame.Frame) error {
	paid, paidInt, err := f.Floats(model.ColCryptoPaid)
	if err != nil {
		return fmt.Errorf("%w: derive %s: %w", ErrShape, model.ColCryptoEarned, err)
	}
	pending, pendingInt, err := f.Floats(model.ColCryptoPending)
	if err != nil {
		return fmt.Errorf("%w: derive %s: %w", ErrShape, model.ColCryptoEarned, err)
	}
	earned := make([]frame.Cell, len(paid))
	if paidInt && pendingInt {
		ip, _ := f.Ints(model.ColCryptoPaid)
		iq, _ := f.Ints(model.ColCryptoPending)
		for i := range ip {
			earned[i] = frame.IntNumber(ip[i] + iq[i])
		}
	} else {
		for i := range paid {
			earned[i] = frame.Number(paid[i]+pending[i], false)
		}
	}
	if err := f.Set(model.ColCryptoEarned, earned); err != nil {
		return fmt.Errorf("%w: %w", ErrShape, err)
	}
	return nil
}

// Totals sums each metric column across all rows.
func Totals(f *frame.Frame) ([]model.Metric, error) {
	out := make([]model.Metric, 0, len(Metrics))
	for _, spec := range Metrics {
		values, integer, err := f.Floats(spec.Column)
		if err != nil {
			return nil, fmt.Errorf("%w: total %s: %w", ErrShape, spec.Column, err)
		}
		m := model.Metric{Column: spec.Column, Label: spec.Label}
		if integer {
			ints, err := f.Ints(spec.Column)
			if err != nil {
				return nil, fmt.Errorf("%w: total %s: %w", ErrShape, spec.Column, err)
			}
			var sum int64
			for _, v := range ints {
				sum += v
			}
			m.Value, m.Display = float64(sum), strconv.FormatInt(sum, 10)
		} else {
			var sum float64
			for _, v := range values {
				sum += v
			}
			m.Value, m.Display = sum, frame.FormatNumber(sum, false)
		}
		out = append(out, m)
	}
	return out, nil
}

// Entries reads typed rows from a derived frame.
func Entries(f *frame.Frame) ([]model.Entry, error) {
	addrs, err := f.Strings(model.ColWalletAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	cols := make(map[string][]float64, 5)
	for _, name := range []string{
		model.ColBlocksWon, model.ColCryptoPaid, model.ColCryptoPending,
		model.ColCryptoEarned, model.ColHashesSubmitted,
	} {
		values, _, err := f.Floats(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrShape, err)
		}
		cols[name] = values
	}

	entries := make([]model.Entry, len(addrs))
	for i, addr := range addrs {
		entries[i] = model.Entry{
			WalletAddr:      addr,
			BlocksWon:       cols[model.ColBlocksWon][i],
			CryptoPaid:      cols[model.ColCryptoPaid][i],
			CryptoPending:   cols[model.ColCryptoPending][i],
			CryptoEarned:    cols[model.ColCryptoEarned][i],
			HashesSubmitted: cols[model.ColHashesSubmitted][i],
		}
	}
	return entries, nil
}
