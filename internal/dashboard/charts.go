package dashboard

import (
	"fmt"
	"io"
	"math"

	"github.com/dgallion1/paperdesk/internal/indicator"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	chartWidth  = "1100px"
	priceHeight = "520px"
	rsiHeight   = "260px"

	rsiOverbought = 70
	rsiOversold   = 30
)

// RenderCharts writes a standalone HTML page with the price chart and
// the RSI chart.
func (r *Report) RenderCharts(w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(r.priceChart(), r.rsiChart())
	return page.Render(w)
}

func (r *Report) labels() []string {
	out := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = r.FormatTime(row.Time)
	}
	return out
}

// priceChart is a candlestick chart with SMA, EMA and Bollinger band
// lines overlaid.
func (r *Report) priceChart() *charts.Kline {
	labels := r.labels()

	candles := make([]opts.KlineData, len(r.Rows))
	for i, row := range r.Rows {
		// ECharts order: open, close, low, high.
		candles[i] = opts.KlineData{Value: []float64{row.Open, row.Close, row.Low, row.High}}
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: priceHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s Price", r.Params.Ticker),
			Subtitle: fmt.Sprintf("%s / %s", r.Params.Period, r.Params.Interval),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	kline.SetXAxis(labels).AddSeries("Price", candles)

	overlay := charts.NewLine()
	overlay.SetXAxis(labels).
		AddSeries(fmt.Sprintf("SMA %d", r.Params.SMAWindow), r.column(func(row Row) float64 { return row.SMA })).
		AddSeries(fmt.Sprintf("EMA %d", r.Params.EMASpan), r.column(func(row Row) float64 { return row.EMA })).
		AddSeries("BB Upper", r.column(func(row Row) float64 { return row.BBUpper })).
		AddSeries("BB Lower", r.column(func(row Row) float64 { return row.BBLower }))
	kline.Overlap(overlay)

	return kline
}

func (r *Report) rsiChart() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: rsiHeight}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("RSI (%d)", indicator.DefaultRSIPeriod)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
	)
	line.SetXAxis(r.labels()).AddSeries("RSI",
		r.column(func(row Row) float64 { return row.RSI }),
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "Overbought", YAxis: rsiOverbought},
			opts.MarkLineNameYAxisItem{Name: "Oversold", YAxis: rsiOversold},
		),
	)
	return line
}

// column extracts one value per row. ECharts draws "-" as a gap, and
// NaN cannot be encoded as JSON.
func (r *Report) column(get func(Row) float64) []opts.LineData {
	out := make([]opts.LineData, len(r.Rows))
	for i, row := range r.Rows {
		v := get(row)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = opts.LineData{Value: "-"}
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}
