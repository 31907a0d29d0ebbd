package leaderboard

import (
	"sort"

	"github.com/okian/minerboard/internal/domain/model"
)

// Rank orders entries by one metric, highest first. The sort is stable so
// ties keep source order.
func Rank(entries []model.Entry, spec MetricSpec) model.Chart {
	bars := make([]model.Bar, 0, len(entries))
	for _, e := range entries {
		v, _ := e.Value(spec.Column)
		bars = append(bars, model.Bar{
			Label:      model.ShortWalletAddr(e.WalletAddr),
			WalletAddr: e.WalletAddr,
			Value:      v,
		})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Value > bars[j].Value
	})
	return model.Chart{
		Column: spec.Column,
		Title:  spec.ChartTitle,
		XTitle: spec.AxisTitle,
		YTitle: WalletAxisTitle,
		Bars:   bars,
	}
}

// Charts ranks entries independently for every metric.
func Charts(entries []model.Entry) []model.Chart {
	out := make([]model.Chart, 0, len(Metrics))
	for _, spec := range Metrics {
		out = append(out, Rank(entries, spec))
	}
	return out
}
