package domain

import "time"

// Row is one search-console record: performance of one query/page on
// one calendar date. Position 0 means the upstream did not report one.
type Row struct {
	Date        time.Time
	Clicks      int
	Impressions int
	Position    float64
}

type Totals struct {
	Clicks      int
	Impressions int
	CTR         float64
	AvgPosition float64
}

type SeriesPoint struct {
	Ts          time.Time
	Clicks      int
	Impressions int
	CTR         float64
	AvgPosition float64
}

// Series is the search adapter result. Truncated is set when the row
// cap was hit, meaning totals may undercount the true period.
type Series struct {
	Totals    Totals
	Series    []SeriesPoint
	Truncated bool
}
