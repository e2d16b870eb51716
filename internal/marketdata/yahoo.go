package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"
	_ "time/tzdata" // exchange time zones resolve in minimal containers

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (compatible; paperdesk/1.0)"
)

// ClientConfig configures a YahooClient.
type ClientConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	MaxRetries    int
	RetryBase     time.Duration
	StatsWindow   time.Duration
}

// YahooClient reads the Yahoo Finance chart endpoint.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryBase  time.Duration
	log        *slog.Logger

	Stats *FetchStats
}

func NewYahooClient(cfg ClientConfig, log *slog.Logger) *YahooClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 2
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &YahooClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		maxRetries: cfg.MaxRetries,
		retryBase:  cfg.RetryBase,
		log:        log,
		Stats:      NewFetchStats(cfg.StatsWindow),
	}
}

// Fetch returns the bars for q. Unknown tickers yield an empty series,
// not an error.
func (c *YahooClient) Fetch(ctx context.Context, q Query) (*Series, error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := Backoff(c.retryBase, attempt-1)
			c.log.Warn("retrying chart fetch", "ticker", q.Ticker, "attempt", attempt, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		series, err := c.fetchOnce(ctx, q)
		if err == nil {
			return series, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}
	return nil, lastErr
}

func (c *YahooClient) fetchOnce(ctx context.Context, q Query) (*Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	series, err := c.doFetch(ctx, q)
	c.Stats.Record(time.Since(start), err)
	return series, err
}

func (c *YahooClient) doFetch(ctx context.Context, q Query) (*Series, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(q.Ticker), url.Values{
		"range":          {q.Period},
		"interval":       {q.Interval},
		"includePrePost": {"false"},
		"events":         {"div,split"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{StatusCode: resp.StatusCode, Message: string(body)}
	case resp.StatusCode == http.StatusNotFound:
		return &Series{Ticker: q.Ticker, Interval: q.Interval}, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("chart api status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return chart.series(q), nil
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

// Values are pointers because Yahoo sends null for missing bars.
type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

func (r chartResponse) series(q Query) *Series {
	s := &Series{Ticker: q.Ticker, Interval: q.Interval}
	if len(r.Chart.Result) == 0 {
		return s
	}
	res := r.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return s
	}
	quote := res.Indicators.Quote[0]

	loc := time.UTC
	if tz := res.Meta.ExchangeTimezoneName; tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	s.Bars = make([]Bar, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		s.Bars[i] = Bar{
			Time:   time.Unix(ts, 0).In(loc),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  at(quote.Close, i),
			Volume: at(quote.Volume, i),
		}
	}
	return s
}

func at(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return math.NaN()
	}
	return *values[i]
}

// Close releases resources.
func (c *YahooClient) Close() {
	c.httpClient.CloseIdleConnections()
}
