// Package marketdata fetches OHLCV price history.
package marketdata

import (
	"context"
	"math"
	"time"
)

// Bar is one OHLCV observation. Missing fields are NaN.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Complete reports whether every field is defined.
func (b Bar) Complete() bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Series is a time-ordered run of bars for one ticker.
type Series struct {
	Ticker   string
	Interval string
	Bars     []Bar
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes returns the closing prices in order.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Complete returns a copy of s without incomplete bars, and how many
// were dropped.
func (s *Series) Complete() (*Series, int) {
	out := &Series{Ticker: s.Ticker, Interval: s.Interval, Bars: make([]Bar, 0, len(s.Bars))}
	for _, b := range s.Bars {
		if b.Complete() {
			out.Bars = append(out.Bars, b)
		}
	}
	return out, len(s.Bars) - len(out.Bars)
}

// Provider fetches price history.
type Provider interface {
	Fetch(ctx context.Context, q Query) (*Series, error)
}
