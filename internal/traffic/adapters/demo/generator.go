// Package demo generates deterministic traffic data for running the
// dashboard without analytics credentials. It never serves production
// requests once credentials are configured.
package demo

import (
	"context"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/traffic/core/domain"
	"dashboard-analytics-service/internal/traffic/core/ports"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

var _ ports.AnalyticsReaderPort = (*Generator)(nil)

func (g *Generator) Demo() bool { return true }

// DailyMetrics derives each day's figures from the date itself so the
// same range always renders the same chart.
func (g *Generator) DailyMetrics(_ context.Context, r daterange.Range) ([]domain.SeriesPoint, error) {
	buckets := r.Buckets(daterange.GranularityDay)
	out := make([]domain.SeriesPoint, 0, len(buckets))
	for _, ts := range buckets {
		seed := ts.YearDay() + ts.Year()%100
		users := 90 + (seed*37)%70
		sessions := users + (seed*13)%40
		out = append(out, domain.SeriesPoint{
			Ts:                 ts,
			Users:              users,
			Sessions:           sessions,
			Pageviews:          sessions*2 + (seed*7)%50,
			BounceRate:         0.35 + float64((seed*11)%20)/100,
			AvgSessionDuration: 95 + float64((seed*17)%60),
		})
	}
	return out, nil
}

func (g *Generator) TopPages(_ context.Context, _ daterange.Range, limit int) ([]domain.PageStat, error) {
	pages := []domain.PageStat{
		{Path: "/", Pageviews: 1240},
		{Path: "/properties", Pageviews: 860},
		{Path: "/assessment", Pageviews: 540},
		{Path: "/contact", Pageviews: 310},
		{Path: "/about", Pageviews: 190},
	}
	if limit < len(pages) {
		pages = pages[:limit]
	}
	return pages, nil
}

func (g *Generator) TopSources(_ context.Context, _ daterange.Range, limit int) ([]domain.SourceStat, error) {
	sources := []domain.SourceStat{
		{Source: "google / organic", Sessions: 980},
		{Source: "(direct) / (none)", Sessions: 620},
		{Source: "bing / organic", Sessions: 140},
		{Source: "facebook / referral", Sessions: 90},
	}
	if limit < len(sources) {
		sources = sources[:limit]
	}
	return sources, nil
}
