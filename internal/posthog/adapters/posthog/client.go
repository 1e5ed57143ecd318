// Package posthog is the HTTP client for the product-analytics API.
package posthog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/posthog/core/domain"
	"dashboard-analytics-service/internal/posthog/core/ports"
)

const maxErrorBody = 4 << 10

type Client struct {
	baseURL   string
	apiKey    string
	projectID string
	http      *http.Client
}

func NewClient(baseURL, apiKey, projectID string) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		projectID: projectID,
		http:      &http.Client{},
	}
}

var _ ports.ProductAnalyticsPort = (*Client)(nil)

type metricsResponse struct {
	KPIs struct {
		ActiveUsers        int     `json:"activeUsers"`
		TotalEvents        int     `json:"totalEvents"`
		Pageviews          int     `json:"pageviews"`
		AvgSessionDuration float64 `json:"avgSessionDuration"`
	} `json:"kpis"`
	Series []struct {
		Date        string `json:"date"`
		Events      int    `json:"events"`
		ActiveUsers int    `json:"activeUsers"`
	} `json:"series"`
	Funnel []struct {
		Name           string  `json:"name"`
		Count          int     `json:"count"`
		ConversionRate float64 `json:"conversionRate"`
	} `json:"funnel"`
	Cohorts []struct {
		Week          string  `json:"week"`
		Users         int     `json:"users"`
		RetentionRate float64 `json:"retentionRate"`
	} `json:"cohorts"`
}

func (c *Client) FetchMetrics(ctx context.Context, r daterange.Range) (*domain.Metrics, error) {
	q := url.Values{}
	q.Set("from", r.From.Format(daterange.Layout))
	q.Set("to", r.To.Format(daterange.Layout))

	endpoint := fmt.Sprintf("%s/api/projects/%s/dashboard-metrics?%s", c.baseURL, c.projectID, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("posthog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posthog fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("posthog: status %d: %s", resp.StatusCode, string(body))
	}

	var raw metricsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("posthog: decode: %w", err)
	}

	out := &domain.Metrics{
		KPIs: domain.KPIs{
			ActiveUsers:        raw.KPIs.ActiveUsers,
			TotalEvents:        raw.KPIs.TotalEvents,
			Pageviews:          raw.KPIs.Pageviews,
			AvgSessionDuration: raw.KPIs.AvgSessionDuration,
		},
		Series:  make([]domain.SeriesPoint, 0, len(raw.Series)),
		Funnel:  make([]domain.FunnelStep, 0, len(raw.Funnel)),
		Cohorts: make([]domain.Cohort, 0, len(raw.Cohorts)),
	}
	for _, p := range raw.Series {
		ts, err := time.ParseInLocation(daterange.Layout, p.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("posthog series date %q: %w", p.Date, err)
		}
		out.Series = append(out.Series, domain.SeriesPoint{Ts: ts, Events: p.Events, ActiveUsers: p.ActiveUsers})
	}
	for _, s := range raw.Funnel {
		out.Funnel = append(out.Funnel, domain.FunnelStep{Name: s.Name, Count: s.Count, ConversionRate: s.ConversionRate})
	}
	for _, ch := range raw.Cohorts {
		out.Cohorts = append(out.Cohorts, domain.Cohort{Week: ch.Week, Users: ch.Users, RetentionRate: ch.RetentionRate})
	}
	return out, nil
}
