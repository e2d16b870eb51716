package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/dgallion1/paperdesk/internal/dashboard"
	"github.com/dgallion1/paperdesk/internal/marketdata"
)

// TableRows is how many of the most recent rows the dashboard lists.
const TableRows = 100

type formView struct {
	Params    dashboard.Params
	Periods   []string
	Intervals []string
}

type tableRow struct {
	Time  string
	Cells []string
}

type pageView struct {
	formView
	Error   string
	Charts  string
	Header  []string
	Rows    []tableRow
	Dropped int
}

func newFormView(p dashboard.Params) formView {
	return formView{Params: p, Periods: marketdata.Periods, Intervals: marketdata.Intervals}
}

// defaultParams are the form's initial values.
func defaultParams() dashboard.Params {
	p := dashboard.Params{Query: marketdata.Query{Ticker: "AAPL"}}
	_ = p.Normalize()
	return p
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageView{formView: newFormView(defaultParams())})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	params, report, err := s.build(r)
	view := pageView{formView: newFormView(params)}
	if err != nil {
		view.Error = err.Error()
		s.render(w, errorStatus(err), view)
		return
	}

	var charts bytes.Buffer
	if err := report.RenderCharts(&charts); err != nil {
		s.log.Error("render charts", "ticker", params.Ticker, "error", err)
		view.Error = "failed to render charts"
		s.render(w, http.StatusInternalServerError, view)
		return
	}
	view.Charts = charts.String()
	view.Header = report.Header()
	view.Dropped = report.Dropped
	for _, row := range report.Tail(TableRows) {
		view.Rows = append(view.Rows, tableRow{
			Time: report.FormatTime(row.Time),
			Cells: []string{
				dashboard.FormatValue(row.Open),
				dashboard.FormatValue(row.High),
				dashboard.FormatValue(row.Low),
				dashboard.FormatValue(row.Close),
				dashboard.FormatValue(row.Volume),
				dashboard.FormatValue(row.SMA),
				dashboard.FormatValue(row.EMA),
				dashboard.FormatValue(row.BBMid),
				dashboard.FormatValue(row.BBUpper),
				dashboard.FormatValue(row.BBLower),
				dashboard.FormatValue(row.RSI),
			},
		})
	}
	s.render(w, http.StatusOK, view)
}

func (s *Server) render(w http.ResponseWriter, code int, view pageView) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		s.log.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Params.Ticker}}{{.Params.Ticker}} · {{end}}Indicator Dashboard</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; }
form { display: flex; flex-wrap: wrap; gap: .75rem; align-items: end; margin-bottom: 1rem; }
label { display: flex; flex-direction: column; font-size: .85rem; }
.error { border: 1px solid #c0392b; background: #fdecea; color: #922b21; padding: .75rem 1rem; }
.charts { width: 100%; height: 1020px; border: 0; }
table { border-collapse: collapse; font-size: .8rem; }
th, td { border: 1px solid #ddd; padding: .2rem .5rem; text-align: right; }
</style>
</head>
<body>
<h1>Indicator Dashboard</h1>
<form method="get" action="/dashboard">
<label>Ticker <input name="ticker" value="{{.Params.Ticker}}" required></label>
<label>Period <select name="period">{{range .Periods}}<option{{if eq . $.Params.Period}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<label>Interval <select name="interval">{{range .Intervals}}<option{{if eq . $.Params.Interval}} selected{{end}}>{{.}}</option>{{end}}</select></label>
<label>SMA window <input type="number" name="sma" min="5" max="200" value="{{.Params.SMAWindow}}"></label>
<label>EMA span <input type="number" name="ema" min="5" max="200" value="{{.Params.EMASpan}}"></label>
<label>BB window <input type="number" name="bb" min="10" max="100" value="{{.Params.BBWindow}}"></label>
<button type="submit">Fetch</button>
</form>
{{if .Error}}<div class="error" role="alert">{{.Error}}</div>{{end}}
{{if .Charts}}
<iframe class="charts" title="charts" srcdoc="{{.Charts}}"></iframe>
<p><a href="/download?ticker={{.Params.Ticker}}&amp;period={{.Params.Period}}&amp;interval={{.Params.Interval}}&amp;sma={{.Params.SMAWindow}}&amp;ema={{.Params.EMASpan}}&amp;bb={{.Params.BBWindow}}">Download CSV</a>{{if .Dropped}} · {{.Dropped}} incomplete bars skipped{{end}}</p>
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr><td>{{.Time}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
</table>
{{end}}
</body>
</html>
`))
