package dashboard

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05-07:00"
)

// Header returns the CSV column names. Intraday reports label the time
// column Datetime.
func (r *Report) Header() []string {
	first := "Date"
	if r.Params.Intraday() {
		first = "Datetime"
	}
	return []string{first, "Open", "High", "Low", "Close", "Volume",
		"SMA", "EMA", "BB_MID", "BB_UP", "BB_LOW", "RSI"}
}

// FormatTime renders a bar time the way the CSV does.
func (r *Report) FormatTime(t time.Time) string {
	if r.Params.Intraday() {
		return t.Format(datetimeLayout)
	}
	return t.Format(dateLayout)
}

// WriteCSV writes every row. Undefined values are empty cells.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Header()); err != nil {
		return err
	}
	for _, row := range r.Rows {
		record := []string{
			r.FormatTime(row.Time),
			FormatValue(row.Open),
			FormatValue(row.High),
			FormatValue(row.Low),
			FormatValue(row.Close),
			FormatValue(row.Volume),
			FormatValue(row.SMA),
			FormatValue(row.EMA),
			FormatValue(row.BBMid),
			FormatValue(row.BBUpper),
			FormatValue(row.BBLower),
			FormatValue(row.RSI),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatValue prints v in its shortest form, or "" when undefined.
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename is the download name for the CSV.
func (r *Report) Filename() string {
	return sanitizeFilename(r.Params.Ticker) + "_data.csv"
}

func sanitizeFilename(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '.', r == '^', r == '=':
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, ".")
	if s == "" {
		return "ticker"
	}
	return s
}
