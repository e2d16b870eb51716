// Package dashboard turns price history into an indicator report.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/paperdesk/internal/indicator"
	"github.com/dgallion1/paperdesk/internal/marketdata"
)

// ErrNoData is returned when the provider has no complete bars for the
// query.
var ErrNoData = errors.New("no data returned, check ticker/period/interval")

// Params are the user's dashboard inputs.
type Params struct {
	marketdata.Query
	SMAWindow int `default:"20" validate:"min=5,max=200"`
	EMASpan   int `default:"50" validate:"min=5,max=200"`
	BBWindow  int `default:"20" validate:"min=10,max=100"`
}

// Normalize fills defaults and validates every field.
func (p *Params) Normalize() error {
	p.Ticker = strings.ToUpper(strings.TrimSpace(p.Ticker))
	return marketdata.Validate(p)
}

// Row is one bar with its indicators. Undefined indicators are NaN.
type Row struct {
	marketdata.Bar
	SMA     float64
	EMA     float64
	BBMid   float64
	BBUpper float64
	BBLower float64
	RSI     float64
}

// Report is the computed dashboard for one query.
type Report struct {
	Params  Params
	Rows    []Row
	Dropped int // bars removed for missing fields
}

// Build fetches history for params and computes the indicators.
func Build(ctx context.Context, provider marketdata.Provider, params Params) (*Report, error) {
	if err := params.Normalize(); err != nil {
		return nil, err
	}
	series, err := provider.Fetch(ctx, params.Query)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", params.Ticker, err)
	}
	if series.Len() == 0 {
		return nil, ErrNoData
	}
	report := Compute(series, params)
	if len(report.Rows) == 0 {
		return nil, ErrNoData
	}
	return report, nil
}

// Compute drops incomplete bars and derives the indicator columns.
func Compute(series *marketdata.Series, params Params) *Report {
	complete, dropped := series.Complete()
	closes := complete.Closes()

	sma := indicator.SMA(closes, params.SMAWindow)
	ema := indicator.EMA(closes, params.EMASpan)
	bands := indicator.Bollinger(closes, params.BBWindow, indicator.DefaultBandWidth)
	rsi := indicator.RSI(closes, indicator.DefaultRSIPeriod)

	rows := make([]Row, len(complete.Bars))
	for i, bar := range complete.Bars {
		rows[i] = Row{
			Bar:     bar,
			SMA:     sma[i],
			EMA:     ema[i],
			BBMid:   bands.Mid[i],
			BBUpper: bands.Upper[i],
			BBLower: bands.Lower[i],
			RSI:     rsi[i],
		}
	}
	return &Report{Params: params, Rows: rows, Dropped: dropped}
}

// Tail returns the last n rows, or all of them when there are fewer.
func (r *Report) Tail(n int) []Row {
	if n < 0 {
		n = 0
	}
	if n >= len(r.Rows) {
		return r.Rows
	}
	return r.Rows[len(r.Rows)-n:]
}

// Last returns the most recent row.
func (r *Report) Last() (Row, bool) {
	if len(r.Rows) == 0 {
		return Row{}, false
	}
	return r.Rows[len(r.Rows)-1], true
}
