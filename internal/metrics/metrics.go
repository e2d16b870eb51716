package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the dashboard's Prometheus collectors.
type Recorder struct {
	fetches         *prometheus.CounterVec
	fetchLatency    prometheus.Histogram
	downloads       prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paperdesk_fetches_total",
				Help: "Total number of price history fetches by outcome",
			},
			[]string{"outcome"},
		),
		fetchLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "paperdesk_fetch_duration_seconds",
				Help:    "Duration of price history fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		downloads: f.NewCounter(
			prometheus.CounterOpts{
				Name: "paperdesk_csv_downloads_total",
				Help: "Total number of CSV exports served",
			},
		),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paperdesk_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paperdesk_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// RecordFetch records one dashboard fetch and its outcome
// (ok, no_data, invalid, error).
func (r *Recorder) RecordFetch(outcome string, d time.Duration) {
	r.fetches.WithLabelValues(outcome).Inc()
	r.fetchLatency.Observe(d.Seconds())
}

// RecordDownload records a CSV export.
func (r *Recorder) RecordDownload() {
	r.downloads.Inc()
}

// Middleware records request counts and durations keyed by the chi route
// pattern, so path parameters do not explode label cardinality.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		r.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
