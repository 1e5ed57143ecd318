package ports

import (
	"context"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/traffic/core/domain"
)

// AnalyticsReaderPort issues the three analytical queries against the
// web-analytics provider, scoped to the configured hostname. Daily rows
// come back ascending by date.
type AnalyticsReaderPort interface {
	DailyMetrics(ctx context.Context, r daterange.Range) ([]domain.SeriesPoint, error)
	TopPages(ctx context.Context, r daterange.Range, limit int) ([]domain.PageStat, error)
	TopSources(ctx context.Context, r daterange.Range, limit int) ([]domain.SourceStat, error)
	// Demo reports whether this reader serves synthetic offline data.
	Demo() bool
}
