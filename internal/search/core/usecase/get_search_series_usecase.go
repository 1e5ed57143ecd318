package usecase

import (
	"context"
	"errors"
	"fmt"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/search/core/domain"
	"dashboard-analytics-service/internal/search/core/ports"
)

// ErrNoSearchData is returned for an empty result set. Unlike the
// chatbot adapter, search surfaces failures instead of zero-filling.
var ErrNoSearchData = errors.New("no search data for range")

type GetSearchSeriesInput struct {
	Range       daterange.Range
	Granularity daterange.Granularity
}

type GetSearchSeriesUseCase struct {
	reader   ports.SearchRowsPort
	rowLimit int
}

func NewGetSearchSeriesUseCase(reader ports.SearchRowsPort, rowLimit int) *GetSearchSeriesUseCase {
	return &GetSearchSeriesUseCase{reader: reader, rowLimit: rowLimit}
}

func (uc *GetSearchSeriesUseCase) Execute(ctx context.Context, in GetSearchSeriesInput) (*domain.Series, error) {
	rows, err := uc.reader.FetchRows(ctx, in.Range, uc.rowLimit)
	if err != nil {
		return nil, fmt.Errorf("search rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoSearchData
	}

	type agg struct {
		clicks      int
		impressions int
		positionSum float64
		count       int
	}

	buckets := in.Range.Buckets(in.Granularity)
	perBucket := make([]agg, len(buckets))

	totals := domain.Totals{}
	var positionSum float64
	positioned := 0

	for _, row := range rows {
		totals.Clicks += row.Clicks
		totals.Impressions += row.Impressions
		// Rows with a missing/zero position are excluded from the
		// position average rather than dragging it toward zero.
		if row.Position > 0 {
			positionSum += row.Position
			positioned++
		}

		i := in.Range.BucketIndex(row.Date, in.Granularity)
		if i < 0 {
			continue
		}
		perBucket[i].clicks += row.Clicks
		perBucket[i].impressions += row.Impressions
		perBucket[i].positionSum += row.Position
		perBucket[i].count++
	}

	totals.CTR = ctr(totals.Clicks, totals.Impressions)
	if positioned > 0 {
		totals.AvgPosition = positionSum / float64(positioned)
	}

	points := make([]domain.SeriesPoint, 0, len(buckets))
	for i, ts := range buckets {
		b := perBucket[i]
		p := domain.SeriesPoint{
			Ts:          ts,
			Clicks:      b.clicks,
			Impressions: b.impressions,
			CTR:         ctr(b.clicks, b.impressions),
		}
		if b.count > 0 {
			p.AvgPosition = b.positionSum / float64(b.count)
		}
		points = append(points, p)
	}

	return &domain.Series{
		Totals:    totals,
		Series:    points,
		Truncated: len(rows) >= uc.rowLimit,
	}, nil
}

func ctr(clicks, impressions int) float64 {
	if impressions == 0 {
		return 0
	}
	return float64(clicks) / float64(impressions)
}
