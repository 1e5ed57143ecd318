package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/traffic/core/domain"
	"dashboard-analytics-service/internal/traffic/core/ports"
)

// ErrUpstreamTimeout distinguishes a hung analytics call from other
// upstream failures so callers can report it separately.
var ErrUpstreamTimeout = errors.New("analytics upstream timed out")

const breakdownLimit = 10

type GetTrafficSeriesInput struct {
	Range       daterange.Range
	Granularity daterange.Granularity
}

type GetTrafficSeriesUseCase struct {
	reader ports.AnalyticsReaderPort
}

func NewGetTrafficSeriesUseCase(reader ports.AnalyticsReaderPort) *GetTrafficSeriesUseCase {
	return &GetTrafficSeriesUseCase{reader: reader}
}

// Execute runs the three provider queries in parallel and fails the
// whole call if any of them fails. Traffic never zero-fills in
// production use: with credentials configured, an upstream error is an
// explicit error here.
func (uc *GetTrafficSeriesUseCase) Execute(ctx context.Context, in GetTrafficSeriesInput) (*domain.Report, error) {
	var (
		wg sync.WaitGroup

		daily   []domain.SeriesPoint
		pages   []domain.PageStat
		sources []domain.SourceStat

		dailyErr, pagesErr, sourcesErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		daily, dailyErr = uc.reader.DailyMetrics(ctx, in.Range)
	}()
	go func() {
		defer wg.Done()
		pages, pagesErr = uc.reader.TopPages(ctx, in.Range, breakdownLimit)
	}()
	go func() {
		defer wg.Done()
		sources, sourcesErr = uc.reader.TopSources(ctx, in.Range, breakdownLimit)
	}()
	wg.Wait()

	if err := firstError(dailyErr, pagesErr, sourcesErr); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("analytics query: %w", err)
	}

	return &domain.Report{
		Totals:   computeTotals(daily),
		Series:   bucketDaily(in.Range, in.Granularity, daily),
		TopPages: pages,
		Sources:  sources,
		Demo:     uc.reader.Demo(),
	}, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Users, sessions and pageviews sum across daily rows; bounce rate and
// session duration average across them.
func computeTotals(daily []domain.SeriesPoint) domain.Totals {
	t := domain.Totals{}
	if len(daily) == 0 {
		return t
	}
	var bounceSum, durationSum float64
	for _, d := range daily {
		t.Users += d.Users
		t.Sessions += d.Sessions
		t.Pageviews += d.Pageviews
		bounceSum += d.BounceRate
		durationSum += d.AvgSessionDuration
	}
	t.BounceRate = bounceSum / float64(len(daily))
	t.AvgSessionDuration = durationSum / float64(len(daily))
	return t
}

func bucketDaily(r daterange.Range, g daterange.Granularity, daily []domain.SeriesPoint) []domain.SeriesPoint {
	buckets := r.Buckets(g)
	points := make([]domain.SeriesPoint, len(buckets))
	counts := make([]int, len(buckets))
	bounceSums := make([]float64, len(buckets))
	durationSums := make([]float64, len(buckets))

	for i, ts := range buckets {
		points[i].Ts = ts
	}
	for _, d := range daily {
		i := r.BucketIndex(d.Ts, g)
		if i < 0 {
			continue
		}
		points[i].Users += d.Users
		points[i].Sessions += d.Sessions
		points[i].Pageviews += d.Pageviews
		bounceSums[i] += d.BounceRate
		durationSums[i] += d.AvgSessionDuration
		counts[i]++
	}
	for i := range points {
		if counts[i] > 0 {
			points[i].BounceRate = bounceSums[i] / float64(counts[i])
			points[i].AvgSessionDuration = durationSums[i] / float64(counts[i])
		}
	}
	return points
}
