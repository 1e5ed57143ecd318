// Package pagespeed is the HTTP client for the Lighthouse-style
// page-performance API.
package pagespeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"dashboard-analytics-service/internal/seoaudit/core/domain"
	"dashboard-analytics-service/internal/seoaudit/core/ports"
)

const maxErrorBody = 4 << 10

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: &http.Client{}}
}

var _ ports.PageAuditPort = (*Client)(nil)

type runResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance   categoryScore `json:"performance"`
			Accessibility categoryScore `json:"accessibility"`
			BestPractices categoryScore `json:"best-practices"`
			SEO           categoryScore `json:"seo"`
		} `json:"categories"`
		Audits struct {
			FirstContentfulPaint   numericAudit `json:"first-contentful-paint"`
			LargestContentfulPaint numericAudit `json:"largest-contentful-paint"`
			CumulativeLayoutShift  numericAudit `json:"cumulative-layout-shift"`
			TotalBlockingTime      numericAudit `json:"total-blocking-time"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

type categoryScore struct {
	Score float64 `json:"score"` // 0..1 upstream, scaled to 0..100 here
}

type numericAudit struct {
	NumericValue float64 `json:"numericValue"`
}

func (c *Client) Audit(ctx context.Context, pageURL string, strategy ports.Strategy) (*domain.Report, error) {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("strategy", string(strategy))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/runPagespeed?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("pagespeed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pagespeed %s audit: %w", strategy, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("pagespeed %s audit: status %d: %s", strategy, resp.StatusCode, string(body))
	}

	var raw runResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("pagespeed %s audit: decode: %w", strategy, err)
	}

	lr := raw.LighthouseResult
	return &domain.Report{
		Performance:   lr.Categories.Performance.Score * 100,
		Accessibility: lr.Categories.Accessibility.Score * 100,
		BestPractices: lr.Categories.BestPractices.Score * 100,
		SEO:           lr.Categories.SEO.Score * 100,

		FirstContentfulPaintMs:   lr.Audits.FirstContentfulPaint.NumericValue,
		LargestContentfulPaintMs: lr.Audits.LargestContentfulPaint.NumericValue,
		CumulativeLayoutShift:    lr.Audits.CumulativeLayoutShift.NumericValue,
		TotalBlockingTimeMs:      lr.Audits.TotalBlockingTime.NumericValue,
	}, nil
}
