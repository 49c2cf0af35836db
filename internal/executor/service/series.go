package service

import (
	"math"
	"sort"

	"golang-stock-signal/internal/entity"
	"golang-stock-signal/internal/executor/indicator"
)

// CleanSeries turns stored bars into the working series: rows with a zero
// timestamp or a non-finite price are dropped, the rest is sorted ascending,
// de-duplicated on timestamp (the last row read wins) and truncated to the
// most recent lookback bars. A lookback of zero keeps everything.
func CleanSeries(bars []entity.PriceBar, lookback int) indicator.Series {
	series := make(indicator.Series, 0, len(bars))
	for _, b := range bars {
		if b.Timestamp.IsZero() {
			continue
		}
		price := b.Price.InexactFloat64()
		if math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}
		series = append(series, indicator.Bar{Time: b.Timestamp.UTC(), Close: price})
	}

	sort.SliceStable(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })

	deduped := series[:0]
	for _, b := range series {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(b.Time) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}

	if lookback > 0 && len(deduped) > lookback {
		deduped = deduped[len(deduped)-lookback:]
	}
	return deduped
}
