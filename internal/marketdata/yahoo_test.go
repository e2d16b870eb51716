package marketdata

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const chartJSON = `{"chart":{"result":[{"meta":{"symbol":"AAPL","exchangeTimezoneName":"America/New_York"},
"timestamp":[1704205800,1704292200,1704378600],
"indicators":{"quote":[{"open":[187.15,null,182.15],"high":[188.44,185.88,183.09],
"low":[183.89,183.43,180.88],"close":[185.64,184.25,181.91],"volume":[82488700,58414500,71983600]}]}}],"error":null}}`

func testClient(url string) *YahooClient {
	return NewYahooClient(ClientConfig{
		BaseURL:       url,
		RatePerSecond: 1000,
		Burst:         10,
		MaxRetries:    2,
		RetryBase:     time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestYahooClient_Fetch(t *testing.T) {
	var gotPath, gotRange, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s, err := c.Fetch(context.Background(), Query{Ticker: " aapl "})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/v8/finance/chart/AAPL" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotRange != "1y" || gotInterval != "1d" {
		t.Errorf("expected defaults 1y/1d, got %q/%q", gotRange, gotInterval)
	}
	if s.Ticker != "AAPL" || s.Len() != 3 {
		t.Fatalf("unexpected series %s with %d bars", s.Ticker, s.Len())
	}
	if !math.IsNaN(s.Bars[1].Open) {
		t.Errorf("expected null open parsed as NaN, got %v", s.Bars[1].Open)
	}
	if s.Bars[0].Close != 185.64 || s.Bars[2].Volume != 71983600 {
		t.Errorf("unexpected values %+v", s.Bars[0])
	}
	if s.Bars[0].Time.Location().String() != "America/New_York" {
		t.Errorf("expected exchange timezone, got %s", s.Bars[0].Time.Location())
	}

	complete, dropped := s.Complete()
	if complete.Len() != 2 || dropped != 1 {
		t.Errorf("expected 2 complete bars and 1 dropped, got %d/%d", complete.Len(), dropped)
	}

	snap := c.Stats.Snapshot()
	if snap.Count != 1 || snap.Failures != 0 {
		t.Errorf("expected one recorded fetch, got %+v", snap)
	}
}

func TestYahooClient_NotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	s, err := testClient(srv.URL).Fetch(context.Background(), Query{Ticker: "NOPE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty series, got %d bars", s.Len())
	}
}

func TestYahooClient_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	s, err := c.Fetch(context.Background(), Query{Ticker: "AAPL"})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 bars, got %d", s.Len())
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
	if snap := c.Stats.Snapshot(); snap.Failures != 2 || snap.Count != 1 {
		t.Errorf("expected 2 failures and 1 success, got %+v", snap)
	}
}

func TestYahooClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), Query{Ticker: "AAPL"})
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 1 call plus 2 retries, got %d", calls.Load())
	}
}

func TestYahooClient_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background(), Query{Ticker: "AAPL"})
	if err == nil || IsRetryable(err) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single call, got %d", calls.Load())
	}
}

func TestYahooClient_InvalidQuery(t *testing.T) {
	c := testClient("http://127.0.0.1:1")
	_, err := c.Fetch(context.Background(), Query{Ticker: "AAPL", Period: "7y"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["period"]; !ok {
		t.Errorf("expected period field error, got %v", ve.Fields)
	}
}

func TestBackoff(t *testing.T) {
	for attempt := range 10 {
		d := Backoff(time.Second, attempt)
		if d < time.Second || d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v out of range", attempt, d)
		}
	}
	if d := Backoff(10*time.Millisecond, 0); d < 10*time.Millisecond || d > 15*time.Millisecond {
		t.Errorf("unexpected base backoff %v", d)
	}
}
