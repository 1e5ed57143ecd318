package ports

import (
	"context"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/search/core/domain"
)

// SearchRowsPort reads search-console rows for a range, ordered
// ascending by date and capped at limit rows.
type SearchRowsPort interface {
	FetchRows(ctx context.Context, r daterange.Range, limit int) ([]domain.Row, error)
}
