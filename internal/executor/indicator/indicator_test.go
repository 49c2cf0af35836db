package indicator

import (
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestEMA(t *testing.T) {
	got := EMA([]float64{1, 2, 3}, 3)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2.25}, got, 1e-12)
}

func TestLastValue(t *testing.T) {
	assert.Equal(t, 3.0, LastValue([]float64{1, 2, 3}))
	assert.True(t, math.IsNaN(LastValue(nil)))
	assert.True(t, math.IsNaN(LastValue(SMA([]float64{1, 2}, 5))))
	assert.False(t, Defined(LastValue([]float64{})))
}

func TestSMA(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4}, 2)
	require.Len(t, got, 4)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDeltaSlice(t, []float64{1.5, 2.5, 3.5}, got[1:], 1e-12)
}

func TestRollingStd_Population(t *testing.T) {
	got := RollingStd([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)
	assert.InDelta(t, 2.0, got[7], 1e-12)
	assert.True(t, math.IsNaN(got[6]))
}

func TestBollinger(t *testing.T) {
	closes := append(repeat(10, 19), 20)
	res := Bollinger(closes, 20, 2.0)

	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(res.Middle[i]), "index %d", i)
		assert.True(t, math.IsNaN(res.Upper[i]), "index %d", i)
	}
	assert.InDelta(t, 10.5, res.Middle[19], 1e-12)
	assert.InDelta(t, math.Sqrt(4.75), res.Std[19], 1e-12)
	assert.InDelta(t, 10.5+2*math.Sqrt(4.75), res.Upper[19], 1e-12)
	assert.InDelta(t, 10.5-2*math.Sqrt(4.75), res.Lower[19], 1e-12)
	assert.Greater(t, closes[19], res.Upper[19])
}

func TestMACD_LinearRamp(t *testing.T) {
	res := MACD(ramp(100, 1, 80), 12, 26, 9)

	assert.Equal(t, 0.0, res.Histogram[0])
	for i := 1; i < 80; i++ {
		assert.Greater(t, res.Line[i], 0.0, "line at %d", i)
		assert.Greater(t, res.Histogram[i], 0.0, "histogram at %d", i)
	}
}

func TestMACross(t *testing.T) {
	t.Run("cross up once both averages were defined", func(t *testing.T) {
		res := MACross([]float64{3, 2, 1, 5}, 2, 3)
		assert.Equal(t, []bool{false, false, false, true}, res.CrossUp)
		assert.Equal(t, []bool{false, false, false, false}, res.CrossDown)
	})

	t.Run("first defined bar is never a cross", func(t *testing.T) {
		res := MACross([]float64{1, 2, 3}, 2, 3)
		assert.False(t, res.CrossUp[2])
		assert.False(t, res.CrossDown[2])
	})

	t.Run("cross down", func(t *testing.T) {
		res := MACross([]float64{1, 2, 3, 0}, 2, 3)
		assert.True(t, res.CrossDown[3])
		assert.False(t, res.CrossUp[3])
	})
}

func TestRSI(t *testing.T) {
	t.Run("monotonic increase resolves to 100", func(t *testing.T) {
		got := RSI(ramp(1, 1, 20), 14)
		for i := 0; i < 14; i++ {
			assert.True(t, math.IsNaN(got[i]), "index %d", i)
		}
		for i := 14; i < 20; i++ {
			assert.Equal(t, 100.0, got[i])
		}
	})

	t.Run("flat series resolves to 50", func(t *testing.T) {
		got := RSI(repeat(5, 20), 14)
		assert.Equal(t, 50.0, got[19])
	})

	t.Run("unit period follows the last move", func(t *testing.T) {
		got := RSI([]float64{1, 2, 1}, 1)
		assert.True(t, math.IsNaN(got[0]))
		assert.Equal(t, 100.0, got[1])
		assert.Equal(t, 0.0, got[2])
	})

	t.Run("wilder smoothing", func(t *testing.T) {
		// changes: +1, -1, +2 with period 2, alpha 0.5
		// avg gain: 1, 0.5, 1.25 ; avg loss: 0, 0.5, 0.25
		got := RSI([]float64{10, 11, 10, 12}, 2)
		assert.True(t, math.IsNaN(got[1]))
		assert.InDelta(t, 50.0, got[2], 1e-12)
		assert.InDelta(t, 100-100/(1+5.0), got[3], 1e-12)
	})
}

func TestCloseBreakout(t *testing.T) {
	closes := []float64{1, 2, 3, 4}

	prev := CloseBreakout(closes, 2, true)
	assert.Equal(t, []bool{false, false, true, true}, prev.Up)
	assert.InDelta(t, 3.0, prev.UpperThreshold[3], 1e-12)

	curr := CloseBreakout(closes, 2, false)
	assert.Equal(t, []bool{false, false, false, false}, curr.Up)

	down := CloseBreakout([]float64{4, 3, 2, 1}, 2, true)
	assert.Equal(t, []bool{false, false, true, true}, down.Down)
}

func TestSMAZScore(t *testing.T) {
	flat := SMAZScore(repeat(3, 5), 5)
	assert.True(t, math.IsNaN(flat.Z[4]))

	res := SMAZScore(append(repeat(10, 19), 20), 20)
	assert.InDelta(t, 9.5/math.Sqrt(4.75), res.Z[19], 1e-12)
}

func TestDailyOpenAndLast(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	series := Series{
		{Time: time.Date(2024, 3, 4, 13, 0, 0, 0, time.UTC), Close: 1},
		{Time: time.Date(2024, 3, 5, 3, 0, 0, 0, time.UTC), Close: 2},
		{Time: time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC), Close: 3},
		{Time: time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC), Close: 4},
	}

	open, last, ok := DailyOpenAndLast(series, ny)
	require.True(t, ok)
	assert.Equal(t, 3.0, open)
	assert.Equal(t, 4.0, last)

	open, last, ok = DailyOpenAndLast(series, time.UTC)
	require.True(t, ok)
	assert.Equal(t, 2.0, open)
	assert.Equal(t, 4.0, last)

	_, _, ok = DailyOpenAndLast(nil, ny)
	assert.False(t, ok)
}
