// Package ga talks to the GA-style web-analytics reporting API. Every
// response is decoded into explicit structs at this boundary; malformed
// payloads surface as errors, never as partially-filled reports.
package ga

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/traffic/core/domain"
	"dashboard-analytics-service/internal/traffic/core/ports"
)

// Cap on the error body read when the provider returns a non-2xx.
const maxErrorBody = 4 << 10

type Client struct {
	baseURL  string
	apiKey   string
	hostname string
	http     *http.Client
}

func NewClient(baseURL, apiKey, hostname string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		hostname: hostname,
		http:     &http.Client{},
	}
}

var _ ports.AnalyticsReaderPort = (*Client)(nil)

func (c *Client) Demo() bool { return false }

type dailyMetricsResponse struct {
	Rows []struct {
		Date               string  `json:"date"`
		Users              int     `json:"users"`
		Sessions           int     `json:"sessions"`
		Pageviews          int     `json:"pageviews"`
		BounceRate         float64 `json:"bounceRate"`
		AvgSessionDuration float64 `json:"avgSessionDuration"`
	} `json:"rows"`
}

func (c *Client) DailyMetrics(ctx context.Context, r daterange.Range) ([]domain.SeriesPoint, error) {
	var resp dailyMetricsResponse
	if err := c.get(ctx, "/v1/reports/daily", c.rangeQuery(r), &resp); err != nil {
		return nil, err
	}

	out := make([]domain.SeriesPoint, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		ts, err := time.ParseInLocation(daterange.Layout, row.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("analytics daily row date %q: %w", row.Date, err)
		}
		out = append(out, domain.SeriesPoint{
			Ts:                 ts,
			Users:              row.Users,
			Sessions:           row.Sessions,
			Pageviews:          row.Pageviews,
			BounceRate:         row.BounceRate,
			AvgSessionDuration: row.AvgSessionDuration,
		})
	}
	return out, nil
}

type topPagesResponse struct {
	Rows []struct {
		Path      string `json:"path"`
		Pageviews int    `json:"pageviews"`
	} `json:"rows"`
}

func (c *Client) TopPages(ctx context.Context, r daterange.Range, limit int) ([]domain.PageStat, error) {
	q := c.rangeQuery(r)
	q.Set("limit", strconv.Itoa(limit))

	var resp topPagesResponse
	if err := c.get(ctx, "/v1/reports/top-pages", q, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.PageStat, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		out = append(out, domain.PageStat{Path: row.Path, Pageviews: row.Pageviews})
	}
	return out, nil
}

type topSourcesResponse struct {
	Rows []struct {
		Source   string `json:"source"`
		Sessions int    `json:"sessions"`
	} `json:"rows"`
}

func (c *Client) TopSources(ctx context.Context, r daterange.Range, limit int) ([]domain.SourceStat, error) {
	q := c.rangeQuery(r)
	q.Set("limit", strconv.Itoa(limit))

	var resp topSourcesResponse
	if err := c.get(ctx, "/v1/reports/top-sources", q, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.SourceStat, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		out = append(out, domain.SourceStat{Source: row.Source, Sessions: row.Sessions})
	}
	return out, nil
}

func (c *Client) rangeQuery(r daterange.Range) url.Values {
	q := url.Values{}
	q.Set("hostname", c.hostname)
	q.Set("from", r.From.Format(daterange.Layout))
	q.Set("to", r.To.Format(daterange.Layout))
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("analytics request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("analytics %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("analytics %s: status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("analytics %s: decode: %w", path, err)
	}
	return nil
}
