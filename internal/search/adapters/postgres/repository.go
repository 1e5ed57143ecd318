package postgres

import (
	"context"

	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/search/core/domain"
	"dashboard-analytics-service/internal/search/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// SearchRepository reads the synced search-console rows from Postgres.
type SearchRepository struct {
	db DB
}

func NewSearchRepository(db DB) *SearchRepository {
	return &SearchRepository{db: db}
}

var _ ports.SearchRowsPort = (*SearchRepository)(nil)

const fetchRowsSQL = `
SELECT date, clicks, impressions, COALESCE(position, 0)
FROM search_console_rows
WHERE date >= $1 AND date <= $2
ORDER BY date ASC
LIMIT $3`

func (r *SearchRepository) FetchRows(ctx context.Context, rng daterange.Range, limit int) ([]domain.Row, error) {
	rows, err := r.db.QueryContext(ctx, fetchRowsSQL, rng.From, rng.To, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		var row domain.Row
		if err := rows.Scan(&row.Date, &row.Clicks, &row.Impressions, &row.Position); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
