package indicator

import "math"

// SMA is the simple rolling mean over window. Undefined until window values are seen.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

// RollingStd is the rolling population standard deviation (denominator = window).
func RollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}
	mean := SMA(values, window)
	for i := window - 1; i < len(values); i++ {
		ss := 0.0
		for _, v := range values[i-window+1 : i+1] {
			d := v - mean[i]
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window))
	}
	return out
}

// RollingMax is the maximum over the trailing window.
func RollingMax(values []float64, window int) []float64 {
	return rollingExtreme(values, window, math.Max)
}

// RollingMin is the minimum over the trailing window.
func RollingMin(values []float64, window int) []float64 {
	return rollingExtreme(values, window, math.Min)
}

func rollingExtreme(values []float64, window int, pick func(a, b float64) float64) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		ext := values[i-window+1]
		for _, v := range values[i-window+2 : i+1] {
			ext = pick(ext, v)
		}
		out[i] = ext
	}
	return out
}

// EMA is the recursive exponential moving average without bias adjustment:
// EMA[0] = v[0], EMA[t] = a*v[t] + (1-a)*EMA[t-1] with a = 2/(span+1).
func EMA(values []float64, span int) []float64 {
	return ewm(values, 2.0/float64(span+1), 1)
}

// ewm applies recursive exponential smoothing with factor alpha. Leading NaN
// values are skipped; the output stays undefined until minPeriods observations
// have been folded in.
func ewm(values []float64, alpha float64, minPeriods int) []float64 {
	out := nanSlice(len(values))
	var (
		avg   float64
		count int
	)
	for i, v := range values {
		if math.IsNaN(v) {
			if count > 0 && count >= minPeriods {
				out[i] = avg
			}
			continue
		}
		if count == 0 {
			avg = v
		} else {
			avg = alpha*v + (1-alpha)*avg
		}
		count++
		if count >= minPeriods {
			out[i] = avg
		}
	}
	return out
}
