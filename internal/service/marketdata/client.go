package marketdata

import (
	"context"
	"fmt"
	"time"

	"BaseScan/internal/domain/models"
	drepo "BaseScan/internal/domain/repository"
	phttp "BaseScan/pkg/http"
)

// Client fetches daily OHLCV history from a chart-JSON endpoint
// (v8 chart schema: timestamp array plus parallel quote arrays).
type Client struct {
	baseURL   string
	userAgent string
	http      *phttp.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *phttp.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// New creates a chart-JSON BarProvider.
func New(baseURL string, opts ...ClientOption) drepo.BarProvider {
	c := &Client{
		baseURL:   baseURL,
		userAgent: "basescan/1.0",
		http:      phttp.NewClient(phttp.WithTimeout(20 * time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyBars fetches up to lookback years of daily bars for symbol,
// ascending by date. Rows with missing prices are dropped; missing volume
// is kept and flagged.
func (c *Client) DailyBars(ctx context.Context, symbol string, lookback drepo.Lookback) ([]models.Bar, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &phttp.RequestOptions{
		Method: phttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, symbol),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string][]string{
			"range":    {fmt.Sprintf("%dy", int(lookback))},
			"interval": {"1d"},
			"events":   {"history"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch chart %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s (%s)", symbol, resp.Chart.Error.Description, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}

	r := resp.Chart.Result[0]
	q := r.Indicators.Quote[0]
	bars := make([]models.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Open) || i >= len(q.High) || i >= len(q.Low) || i >= len(q.Close) {
			break
		}
		// Null quote rows (halts, partial days) are dropped, not zero-filled.
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}
		date := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		// Some feeds repeat the live bar at the tail; keep the first row per day.
		if n := len(bars); n > 0 && !date.After(bars[n-1].Date) {
			continue
		}
		b := models.Bar{
			Date:  date,
			Open:  *q.Open[i],
			High:  *q.High[i],
			Low:   *q.Low[i],
			Close: *q.Close[i],
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			b.Volume = *q.Volume[i]
			b.HasVolume = true
		}
		bars = append(bars, b)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("chart %s: no usable bars", symbol)
	}
	return bars, nil
}

var _ drepo.BarProvider = (*Client)(nil)
