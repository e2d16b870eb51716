// Package indicator computes technical indicators over closing prices.
// Undefined values are NaN; every result has the length of its input.
package indicator

import "math"

const (
	DefaultBandWidth = 2.0
	DefaultRSIPeriod = 14
)

// Bands are Bollinger bands.
type Bands struct {
	Mid   []float64
	Upper []float64
	Lower []float64
}

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA is the trailing mean over window values. The first window-1
// entries are NaN, as is any window containing NaN.
func SMA(values []float64, window int) []float64 {
	out := nans(len(values))
	if window < 1 {
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

// EMA is the exponential moving average with alpha = 2/(span+1), seeded
// with the first value and without bias adjustment.
func EMA(values []float64, span int) []float64 {
	out := nans(len(values))
	if span < 1 || len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// Bollinger returns SMA(window) plus and minus k trailing sample
// standard deviations.
func Bollinger(values []float64, window int, k float64) Bands {
	mid := SMA(values, window)
	std := rollingStd(values, window)
	upper := nans(len(values))
	lower := nans(len(values))
	for i := range values {
		if math.IsNaN(mid[i]) || math.IsNaN(std[i]) {
			continue
		}
		upper[i] = mid[i] + k*std[i]
		lower[i] = mid[i] - k*std[i]
	}
	return Bands{Mid: mid, Upper: upper, Lower: lower}
}

// rollingStd is the trailing sample (n-1) standard deviation. A window
// of one value has no sample deviation.
func rollingStd(values []float64, window int) []float64 {
	out := nans(len(values))
	if window < 2 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		w := values[i-window+1 : i+1]
		mean := 0.0
		for _, v := range w {
			mean += v
		}
		mean /= float64(window)
		ss := 0.0
		for _, v := range w {
			d := v - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}

// RSI is the relative strength index. Gains and losses are averaged with
// an exponentially weighted mean of alpha 1/period using bias-adjusted
// weights. RSI[0] is NaN; a window with no losses scores 100.
func RSI(values []float64, period int) []float64 {
	out := nans(len(values))
	if period < 1 || len(values) < 2 {
		return out
	}
	decay := 1 - 1/float64(period)

	var upNum, downNum, den float64
	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		up, down := math.Max(delta, 0), math.Max(-delta, 0)

		upNum = up + decay*upNum
		downNum = down + decay*downNum
		den = 1 + decay*den

		avgUp, avgDown := upNum/den, downNum/den
		if avgDown == 0 {
			out[i] = 100
			continue
		}
		rs := avgUp / avgDown
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
