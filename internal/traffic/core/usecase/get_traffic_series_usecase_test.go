package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/traffic/core/domain"
	"dashboard-analytics-service/internal/traffic/core/usecase"
)

type fakeAnalyticsReader struct {
	DailyFn   func(ctx context.Context, r daterange.Range) ([]domain.SeriesPoint, error)
	PagesFn   func(ctx context.Context, r daterange.Range, limit int) ([]domain.PageStat, error)
	SourcesFn func(ctx context.Context, r daterange.Range, limit int) ([]domain.SourceStat, error)
	demo      bool
}

func (f *fakeAnalyticsReader) DailyMetrics(ctx context.Context, r daterange.Range) ([]domain.SeriesPoint, error) {
	if f.DailyFn != nil {
		return f.DailyFn(ctx, r)
	}
	return nil, nil
}

func (f *fakeAnalyticsReader) TopPages(ctx context.Context, r daterange.Range, limit int) ([]domain.PageStat, error) {
	if f.PagesFn != nil {
		return f.PagesFn(ctx, r, limit)
	}
	return nil, nil
}

func (f *fakeAnalyticsReader) TopSources(ctx context.Context, r daterange.Range, limit int) ([]domain.SourceStat, error) {
	if f.SourcesFn != nil {
		return f.SourcesFn(ctx, r, limit)
	}
	return nil, nil
}

func (f *fakeAnalyticsReader) Demo() bool { return f.demo }

func testRange(t *testing.T, from, to string) daterange.Range {
	t.Helper()
	r, err := daterange.ParseRange(from, to)
	if err != nil {
		t.Fatalf("ParseRange(%s, %s): %v", from, to, err)
	}
	return r
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := daterange.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %s: %v", value, err)
	}
	return d
}

func TestGetTrafficSeries_TotalsSumAndAverage(t *testing.T) {
	reader := &fakeAnalyticsReader{
		DailyFn: func(ctx context.Context, r daterange.Range) ([]domain.SeriesPoint, error) {
			return []domain.SeriesPoint{
				{Ts: day(t, "2024-01-01"), Users: 100, Sessions: 120, Pageviews: 300, BounceRate: 0.4, AvgSessionDuration: 100},
				{Ts: day(t, "2024-01-02"), Users: 200, Sessions: 220, Pageviews: 500, BounceRate: 0.6, AvgSessionDuration: 200},
			}, nil
		},
		PagesFn: func(ctx context.Context, r daterange.Range, limit int) ([]domain.PageStat, error) {
			return []domain.PageStat{{Path: "/", Pageviews: 400}}, nil
		},
		SourcesFn: func(ctx context.Context, r daterange.Range, limit int) ([]domain.SourceStat, error) {
			return []domain.SourceStat{{Source: "google / organic", Sessions: 250}}, nil
		},
	}

	uc := usecase.NewGetTrafficSeriesUseCase(reader)
	res, err := uc.Execute(context.Background(), usecase.GetTrafficSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-02"),
		Granularity: daterange.GranularityDay,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if res.Totals.Users != 300 || res.Totals.Sessions != 340 || res.Totals.Pageviews != 800 {
		t.Fatalf("unexpected summed totals: %+v", res.Totals)
	}
	if res.Totals.BounceRate != 0.5 {
		t.Fatalf("expected averaged bounce rate 0.5, got %v", res.Totals.BounceRate)
	}
	if res.Totals.AvgSessionDuration != 150 {
		t.Fatalf("expected averaged duration 150, got %v", res.Totals.AvgSessionDuration)
	}
	if len(res.Series) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(res.Series))
	}
	if len(res.TopPages) != 1 || len(res.Sources) != 1 {
		t.Fatalf("expected breakdown passthrough, got pages=%d sources=%d", len(res.TopPages), len(res.Sources))
	}
	if res.Demo {
		t.Fatalf("expected demo=false")
	}
}

func TestGetTrafficSeries_WeekGranularityAggregates(t *testing.T) {
	reader := &fakeAnalyticsReader{
		DailyFn: func(ctx context.Context, r daterange.Range) ([]domain.SeriesPoint, error) {
			var out []domain.SeriesPoint
			for _, ts := range r.Buckets(daterange.GranularityDay) {
				out = append(out, domain.SeriesPoint{Ts: ts, Users: 10, Sessions: 12, Pageviews: 30, BounceRate: 0.5, AvgSessionDuration: 120})
			}
			return out, nil
		},
	}

	uc := usecase.NewGetTrafficSeriesUseCase(reader)
	res, err := uc.Execute(context.Background(), usecase.GetTrafficSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-10"),
		Granularity: daterange.GranularityWeek,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if len(res.Series) != 2 {
		t.Fatalf("expected 2 week buckets, got %d", len(res.Series))
	}
	if res.Series[0].Users != 70 {
		t.Fatalf("expected 70 users in full first week, got %d", res.Series[0].Users)
	}
	if res.Series[1].Users != 30 {
		t.Fatalf("expected 30 users in 3-day second week, got %d", res.Series[1].Users)
	}
	if res.Series[0].BounceRate != 0.5 {
		t.Fatalf("expected bounce rate average preserved, got %v", res.Series[0].BounceRate)
	}
}

func TestGetTrafficSeries_QueryFailureIsExplicit(t *testing.T) {
	reader := &fakeAnalyticsReader{
		PagesFn: func(ctx context.Context, r daterange.Range, limit int) ([]domain.PageStat, error) {
			return nil, errors.New("quota exceeded")
		},
	}

	uc := usecase.NewGetTrafficSeriesUseCase(reader)
	_, err := uc.Execute(context.Background(), usecase.GetTrafficSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-07"),
		Granularity: daterange.GranularityDay,
	})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
}

func TestGetTrafficSeries_TimeoutIsDistinct(t *testing.T) {
	reader := &fakeAnalyticsReader{
		DailyFn: func(ctx context.Context, r daterange.Range) ([]domain.SeriesPoint, error) {
			return nil, context.DeadlineExceeded
		},
	}

	uc := usecase.NewGetTrafficSeriesUseCase(reader)
	_, err := uc.Execute(context.Background(), usecase.GetTrafficSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-07"),
		Granularity: daterange.GranularityDay,
	})
	if !errors.Is(err, usecase.ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}
}
