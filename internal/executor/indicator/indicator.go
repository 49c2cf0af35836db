package indicator

import (
	"math"
	"time"

	"golang-stock-signal/pkg/utils"
)

// MACDResult holds the three MACD series.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes EMA(fast) - EMA(slow), its EMA(signal) and the histogram.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i]
	}
	sig := EMA(line, signal)
	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - sig[i]
	}
	return MACDResult{Line: line, Signal: sig, Histogram: hist}
}

// BollingerResult holds the middle band, the bands and the rolling std.
type BollingerResult struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
	Std    []float64
}

// Bollinger computes bands k population standard deviations around the rolling mean.
func Bollinger(closes []float64, window int, k float64) BollingerResult {
	mid := SMA(closes, window)
	std := RollingStd(closes, window)
	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))
	for i := range closes {
		upper[i] = mid[i] + k*std[i]
		lower[i] = mid[i] - k*std[i]
	}
	return BollingerResult{Middle: mid, Upper: upper, Lower: lower, Std: std}
}

// MACrossResult holds both moving averages and the per-bar cross flags.
type MACrossResult struct {
	Short     []float64
	Long      []float64
	CrossUp   []bool
	CrossDown []bool
}

// MACross flags the bars where the short average moves above (CrossUp) or
// at-or-below (CrossDown) the long average. Both averages must be defined on
// the current and the previous bar for a cross to register.
func MACross(closes []float64, short, long int) MACrossResult {
	res := MACrossResult{
		Short:     SMA(closes, short),
		Long:      SMA(closes, long),
		CrossUp:   make([]bool, len(closes)),
		CrossDown: make([]bool, len(closes)),
	}
	for i := 1; i < len(closes); i++ {
		if !Defined(res.Short[i]) || !Defined(res.Long[i]) || !Defined(res.Short[i-1]) || !Defined(res.Long[i-1]) {
			continue
		}
		prevAbove := res.Short[i-1] > res.Long[i-1]
		currAbove := res.Short[i] > res.Long[i]
		res.CrossUp[i] = !prevAbove && currAbove
		res.CrossDown[i] = prevAbove && !currAbove
	}
	return res
}

// RSI is the Wilder relative strength index. The averages are smoothed with
// alpha = 1/period and are undefined until period price changes are seen.
// A window without losses yields 100, a window without any movement yields 50.
func RSI(closes []float64, period int) []float64 {
	n := len(closes)
	out := nanSlice(n)
	if period <= 0 || n == 0 {
		return out
	}
	gains := nanSlice(n)
	losses := nanSlice(n)
	for i := 1; i < n; i++ {
		d := closes[i] - closes[i-1]
		gains[i] = math.Max(d, 0)
		losses[i] = math.Max(-d, 0)
	}
	alpha := 1.0 / float64(period)
	avgGain := ewm(gains, alpha, period)
	avgLoss := ewm(losses, alpha, period)
	for i := range out {
		g, l := avgGain[i], avgLoss[i]
		if math.IsNaN(g) || math.IsNaN(l) {
			continue
		}
		switch {
		case l == 0 && g == 0:
			out[i] = 50
		case l == 0:
			out[i] = 100
		default:
			out[i] = 100 - 100/(1+g/l)
		}
	}
	return out
}

// BreakoutResult holds the thresholds and per-bar breakout flags.
type BreakoutResult struct {
	UpperThreshold []float64
	LowerThreshold []float64
	Up             []bool
	Down           []bool
}

// CloseBreakout compares each close with the rolling max/min over window.
// With usePrevious the thresholds are shifted one bar so the current close is
// never part of the window it is compared against.
func CloseBreakout(closes []float64, window int, usePrevious bool) BreakoutResult {
	hi := RollingMax(closes, window)
	lo := RollingMin(closes, window)
	if usePrevious {
		hi = Shift(hi, 1)
		lo = Shift(lo, 1)
	}
	res := BreakoutResult{
		UpperThreshold: hi,
		LowerThreshold: lo,
		Up:             make([]bool, len(closes)),
		Down:           make([]bool, len(closes)),
	}
	for i, c := range closes {
		res.Up[i] = Defined(hi[i]) && c > hi[i]
		res.Down[i] = Defined(lo[i]) && c < lo[i]
	}
	return res
}

// ZScoreResult holds the rolling mean, std and z-score.
type ZScoreResult struct {
	Mean []float64
	Std  []float64
	Z    []float64
}

// SMAZScore computes (close - sma) / population std over window. Z is NaN
// where the std is zero.
func SMAZScore(closes []float64, window int) ZScoreResult {
	mean := SMA(closes, window)
	std := RollingStd(closes, window)
	z := nanSlice(len(closes))
	for i, c := range closes {
		if Defined(mean[i]) && Defined(std[i]) && std[i] != 0 {
			z[i] = (c - mean[i]) / std[i]
		}
	}
	return ZScoreResult{Mean: mean, Std: std, Z: z}
}

// DailyOpenAndLast returns the first and the last close of the local trading
// day (in loc) of the final bar. ok is false for an empty series.
func DailyOpenAndLast(series Series, loc *time.Location) (open, last float64, ok bool) {
	if len(series) == 0 {
		return 0, 0, false
	}
	if loc == nil {
		loc = time.UTC
	}
	final := series.Last()
	for _, b := range series {
		if utils.SameLocalDay(b.Time, final.Time, loc) {
			return b.Close, final.Close, true
		}
	}
	return 0, 0, false
}
