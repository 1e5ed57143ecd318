package ports

import (
	"context"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/posthog/core/domain"
)

type ProductAnalyticsPort interface {
	FetchMetrics(ctx context.Context, r daterange.Range) (*domain.Metrics, error)
}
