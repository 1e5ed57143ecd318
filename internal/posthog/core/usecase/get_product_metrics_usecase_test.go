package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/posthog/core/domain"
	"dashboard-analytics-service/internal/posthog/core/usecase"
)

type fakeProductReader struct {
	FetchFn func(ctx context.Context, r daterange.Range) (*domain.Metrics, error)
}

func (f *fakeProductReader) FetchMetrics(ctx context.Context, r daterange.Range) (*domain.Metrics, error) {
	return f.FetchFn(ctx, r)
}

func testRange(t *testing.T, from, to string) daterange.Range {
	t.Helper()
	r, err := daterange.ParseRange(from, to)
	if err != nil {
		t.Fatalf("ParseRange(%s, %s): %v", from, to, err)
	}
	return r
}

func TestGetProductMetrics_DisabledServesMock(t *testing.T) {
	uc := usecase.NewGetProductMetricsUseCase(nil)

	r := testRange(t, "2024-01-01", "2024-01-07")
	res, err := uc.Execute(context.Background(), r)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !res.Mock {
		t.Fatalf("expected mock data with disabled integration")
	}
	if len(res.Series) != 7 {
		t.Fatalf("expected one mock point per day, got %d", len(res.Series))
	}
	if len(res.Funnel) != 3 || len(res.Cohorts) != 4 {
		t.Fatalf("expected full mock shape, got funnel=%d cohorts=%d", len(res.Funnel), len(res.Cohorts))
	}
}

func TestGetProductMetrics_MockIsDeterministic(t *testing.T) {
	uc := usecase.NewGetProductMetricsUseCase(nil)

	r := testRange(t, "2024-01-01", "2024-01-07")
	a, err := uc.Execute(context.Background(), r)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	b, err := uc.Execute(context.Background(), r)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("mock data must be stable for a fixed range")
	}
}

func TestGetProductMetrics_UpstreamErrorServesMock(t *testing.T) {
	reader := &fakeProductReader{
		FetchFn: func(ctx context.Context, r daterange.Range) (*domain.Metrics, error) {
			return nil, errors.New("401 unauthorized")
		},
	}

	uc := usecase.NewGetProductMetricsUseCase(reader)
	res, err := uc.Execute(context.Background(), testRange(t, "2024-01-01", "2024-01-07"))
	if err != nil {
		t.Fatalf("upstream failure must not surface, got %v", err)
	}
	if !res.Mock {
		t.Fatalf("expected mock fallback on upstream error")
	}
}

func TestGetProductMetrics_LiveDataPassesThrough(t *testing.T) {
	live := &domain.Metrics{
		KPIs:   domain.KPIs{ActiveUsers: 321, TotalEvents: 9000},
		Series: []domain.SeriesPoint{},
	}
	reader := &fakeProductReader{
		FetchFn: func(ctx context.Context, r daterange.Range) (*domain.Metrics, error) {
			return live, nil
		},
	}

	uc := usecase.NewGetProductMetricsUseCase(reader)
	res, err := uc.Execute(context.Background(), testRange(t, "2024-01-01", "2024-01-07"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res != live {
		t.Fatalf("expected live metrics passthrough")
	}
	if res.Mock {
		t.Fatalf("live data must not carry the mock flag")
	}
}
