package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/paperdesk/internal/dashboard"
	"github.com/dgallion1/paperdesk/internal/marketdata"
)

// parseParams reads the dashboard inputs from the query string. Missing
// values are left zero so defaults apply during validation.
func parseParams(r *http.Request) (dashboard.Params, error) {
	q := r.URL.Query()
	p := dashboard.Params{
		Query: marketdata.Query{
			Ticker:   q.Get("ticker"),
			Period:   q.Get("period"),
			Interval: q.Get("interval"),
		},
	}

	bad := map[string]string{}
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"sma", &p.SMAWindow},
		{"ema", &p.EMASpan},
		{"bb", &p.BBWindow},
	} {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			bad[f.name] = "must be a whole number"
			continue
		}
		*f.dst = n
	}
	if len(bad) > 0 {
		return p, &marketdata.ValidationError{Fields: bad}
	}
	return p, nil
}

// build parses the request, builds the report and records the outcome.
func (s *Server) build(r *http.Request) (dashboard.Params, *dashboard.Report, error) {
	params, err := parseParams(r)
	// Normalize also when parsing failed, so the form shows defaults.
	if verr := params.Normalize(); err == nil {
		err = verr
	}
	if err != nil {
		s.metrics.RecordFetch("invalid", 0)
		return params, nil, err
	}

	start := time.Now()
	report, err := dashboard.Build(r.Context(), s.provider, params)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		s.metrics.RecordFetch("ok", elapsed)
	case errors.Is(err, dashboard.ErrNoData):
		s.metrics.RecordFetch("no_data", elapsed)
	default:
		s.metrics.RecordFetch("error", elapsed)
		s.log.Error("dashboard fetch failed", "ticker", params.Ticker, "error", err)
	}
	return params, report, err
}

func isValidation(err error) bool {
	var ve *marketdata.ValidationError
	return errors.As(err, &ve)
}

// errorStatus maps a build error to an HTTP status.
func errorStatus(err error) int {
	switch {
	case isValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
