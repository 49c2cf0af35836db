// Package indicator holds the pure technical indicator transforms used by the
// signal strategies. Every function maps a close series to one or more series
// of the same length; positions where the indicator is not yet defined hold NaN.
package indicator

import (
	"math"
	"time"
)

// Bar is one observation of the working price series.
type Bar struct {
	Time  time.Time
	Close float64
}

// Series is an ascending, de-duplicated sequence of bars for one ticker.
type Series []Bar

// Closes returns the close prices in series order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Last returns the final bar. It panics on an empty series.
func (s Series) Last() Bar {
	return s[len(s)-1]
}

// LastValue returns the final reading of an indicator series, or NaN when empty.
func LastValue(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}

// Defined reports whether v holds a usable indicator value.
func Defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Shift moves every value n positions forward, filling the head with NaN.
func Shift(values []float64, n int) []float64 {
	out := nanSlice(len(values))
	for i := n; i < len(values); i++ {
		out[i] = values[i-n]
	}
	return out
}
