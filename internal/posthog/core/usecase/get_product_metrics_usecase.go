package usecase

import (
	"context"
	"log"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/posthog/core/domain"
	"dashboard-analytics-service/internal/posthog/core/ports"
)

// GetProductMetricsUseCase serves product-analytics data with a
// mock-on-failure policy: a disabled integration or an upstream error
// yields deterministic mock data, never an error to the route.
type GetProductMetricsUseCase struct {
	reader ports.ProductAnalyticsPort // nil when the integration is disabled
}

func NewGetProductMetricsUseCase(reader ports.ProductAnalyticsPort) *GetProductMetricsUseCase {
	return &GetProductMetricsUseCase{reader: reader}
}

func (uc *GetProductMetricsUseCase) Execute(ctx context.Context, r daterange.Range) (*domain.Metrics, error) {
	if uc.reader == nil {
		return mockMetrics(r), nil
	}
	res, err := uc.reader.FetchMetrics(ctx, r)
	if err != nil {
		log.Printf("posthog: upstream failed, serving mock data: %v", err)
		return mockMetrics(r), nil
	}
	return res, nil
}

// mockMetrics derives every figure from the range so repeated calls
// render identically.
func mockMetrics(r daterange.Range) *domain.Metrics {
	buckets := r.Buckets(daterange.GranularityDay)
	series := make([]domain.SeriesPoint, 0, len(buckets))

	totalEvents := 0
	activePeak := 0
	for _, ts := range buckets {
		seed := ts.YearDay() + ts.Year()%100
		events := 240 + (seed*29)%160
		active := 40 + (seed*19)%35
		totalEvents += events
		if active > activePeak {
			activePeak = active
		}
		series = append(series, domain.SeriesPoint{Ts: ts, Events: events, ActiveUsers: active})
	}

	visited := 100 + len(buckets)*3
	signedUp := visited * 42 / 100
	converted := signedUp * 31 / 100

	return &domain.Metrics{
		KPIs: domain.KPIs{
			ActiveUsers:        activePeak,
			TotalEvents:        totalEvents,
			Pageviews:          totalEvents * 3 / 5,
			AvgSessionDuration: 132.5,
		},
		Series: series,
		Funnel: []domain.FunnelStep{
			{Name: "visited", Count: visited, ConversionRate: 1},
			{Name: "signed_up", Count: signedUp, ConversionRate: 0.42},
			{Name: "converted", Count: converted, ConversionRate: 0.31},
		},
		Cohorts: []domain.Cohort{
			{Week: "W-3", Users: 58, RetentionRate: 0.34},
			{Week: "W-2", Users: 64, RetentionRate: 0.41},
			{Week: "W-1", Users: 71, RetentionRate: 0.47},
			{Week: "W-0", Users: 77, RetentionRate: 1},
		},
		Mock: true,
	}
}
