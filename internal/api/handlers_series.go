package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
)

type seriesRow struct {
	Time    string   `json:"time"`
	Open    float64  `json:"open"`
	High    float64  `json:"high"`
	Low     float64  `json:"low"`
	Close   float64  `json:"close"`
	Volume  float64  `json:"volume"`
	SMA     *float64 `json:"sma"`
	EMA     *float64 `json:"ema"`
	BBMid   *float64 `json:"bb_mid"`
	BBUpper *float64 `json:"bb_up"`
	BBLower *float64 `json:"bb_low"`
	RSI     *float64 `json:"rsi"`
}

// nullable maps NaN to a JSON null.
func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// handleSeries returns the computed rows as JSON.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	_, report, err := s.build(r)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}

	rows := make([]seriesRow, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = seriesRow{
			Time:    report.FormatTime(row.Time),
			Open:    row.Open,
			High:    row.High,
			Low:     row.Low,
			Close:   row.Close,
			Volume:  row.Volume,
			SMA:     nullable(row.SMA),
			EMA:     nullable(row.EMA),
			BBMid:   nullable(row.BBMid),
			BBUpper: nullable(row.BBUpper),
			BBLower: nullable(row.BBLower),
			RSI:     nullable(row.RSI),
		}
	}

	p := report.Params
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ticker":   p.Ticker,
		"period":   p.Period,
		"interval": p.Interval,
		"sma":      p.SMAWindow,
		"ema":      p.EMASpan,
		"bb":       p.BBWindow,
		"dropped":  report.Dropped,
		"rows":     rows,
	})
}

// handleDownload serves the report as a CSV attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	_, report, err := s.build(r)
	if err != nil {
		jsonError(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename()))
	if err := report.WriteCSV(w); err != nil {
		s.log.Error("write csv", "ticker", report.Params.Ticker, "error", err)
		return
	}
	s.metrics.RecordDownload()
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
