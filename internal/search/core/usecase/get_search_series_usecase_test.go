package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/search/core/domain"
	"dashboard-analytics-service/internal/search/core/usecase"
)

type fakeSearchReader struct {
	FetchFn   func(ctx context.Context, r daterange.Range, limit int) ([]domain.Row, error)
	lastLimit int
}

func (f *fakeSearchReader) FetchRows(ctx context.Context, r daterange.Range, limit int) ([]domain.Row, error) {
	f.lastLimit = limit
	if f.FetchFn != nil {
		return f.FetchFn(ctx, r, limit)
	}
	return nil, nil
}

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

func TestGetSearchSeries_Totals(t *testing.T) {
	reader := &fakeSearchReader{
		FetchFn: func(ctx context.Context, r daterange.Range, limit int) ([]domain.Row, error) {
			return []domain.Row{
				{Date: day(t, "2024-01-01"), Clicks: 10, Impressions: 100, Position: 10},
				{Date: day(t, "2024-01-01"), Clicks: 5, Impressions: 100, Position: 0},
				{Date: day(t, "2024-01-02"), Clicks: 15, Impressions: 300, Position: 20},
			}, nil
		},
	}

	uc := usecase.NewGetSearchSeriesUseCase(reader, 100)
	res, err := uc.Execute(context.Background(), usecase.GetSearchSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-03"),
		Granularity: daterange.GranularityDay,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if res.Totals.Clicks != 30 || res.Totals.Impressions != 500 {
		t.Fatalf("unexpected totals: %+v", res.Totals)
	}
	if res.Totals.CTR != 0.06 {
		t.Fatalf("expected ctr 0.06, got %v", res.Totals.CTR)
	}
	// Zero positions stay out of the average: (10+20)/2, not /3.
	if res.Totals.AvgPosition != 15 {
		t.Fatalf("expected avgPosition 15, got %v", res.Totals.AvgPosition)
	}
	if res.Truncated {
		t.Fatalf("expected truncated=false under the cap")
	}
	if reader.lastLimit != 100 {
		t.Fatalf("expected limit 100 passed through, got %d", reader.lastLimit)
	}

	if len(res.Series) != 3 {
		t.Fatalf("expected 3 day buckets, got %d", len(res.Series))
	}
	// Empty trailing bucket is still emitted, zero-valued.
	last := res.Series[2]
	if last.Clicks != 0 || last.Impressions != 0 || last.CTR != 0 {
		t.Fatalf("expected zero point for empty bucket, got %+v", last)
	}
}

func TestGetSearchSeries_CTRZeroWhenNoImpressions(t *testing.T) {
	reader := &fakeSearchReader{
		FetchFn: func(ctx context.Context, r daterange.Range, limit int) ([]domain.Row, error) {
			return []domain.Row{
				{Date: day(t, "2024-01-01"), Clicks: 0, Impressions: 0, Position: 3},
			}, nil
		},
	}

	uc := usecase.NewGetSearchSeriesUseCase(reader, 100)
	res, err := uc.Execute(context.Background(), usecase.GetSearchSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-01"),
		Granularity: daterange.GranularityDay,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.Totals.CTR != 0 {
		t.Fatalf("expected ctr 0 with zero impressions, got %v", res.Totals.CTR)
	}
}

func TestGetSearchSeries_EmptyResultIsAnError(t *testing.T) {
	uc := usecase.NewGetSearchSeriesUseCase(&fakeSearchReader{}, 100)
	_, err := uc.Execute(context.Background(), usecase.GetSearchSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-07"),
		Granularity: daterange.GranularityDay,
	})
	if !errors.Is(err, usecase.ErrNoSearchData) {
		t.Fatalf("expected ErrNoSearchData, got %v", err)
	}
}

func TestGetSearchSeries_FetchErrorIsWrapped(t *testing.T) {
	reader := &fakeSearchReader{
		FetchFn: func(ctx context.Context, r daterange.Range, limit int) ([]domain.Row, error) {
			return nil, errors.New("pq: relation does not exist")
		},
	}

	uc := usecase.NewGetSearchSeriesUseCase(reader, 100)
	_, err := uc.Execute(context.Background(), usecase.GetSearchSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-07"),
		Granularity: daterange.GranularityDay,
	})
	if err == nil || !strings.Contains(err.Error(), "pq: relation does not exist") {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
}

func TestGetSearchSeries_TruncatedAtRowCap(t *testing.T) {
	reader := &fakeSearchReader{
		FetchFn: func(ctx context.Context, r daterange.Range, limit int) ([]domain.Row, error) {
			rows := make([]domain.Row, limit)
			for i := range rows {
				rows[i] = domain.Row{Date: day(t, "2024-01-01"), Clicks: 1, Impressions: 10, Position: 5}
			}
			return rows, nil
		},
	}

	uc := usecase.NewGetSearchSeriesUseCase(reader, 2)
	res, err := uc.Execute(context.Background(), usecase.GetSearchSeriesInput{
		Range:       testRange(t, "2024-01-01", "2024-01-01"),
		Granularity: daterange.GranularityDay,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.Truncated {
		t.Fatalf("expected truncated=true at the row cap")
	}
}
