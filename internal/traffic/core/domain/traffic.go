package domain

import "time"

type Totals struct {
	Users              int
	Sessions           int
	Pageviews          int
	BounceRate         float64
	AvgSessionDuration float64
}

type SeriesPoint struct {
	Ts                 time.Time
	Users              int
	Sessions           int
	Pageviews          int
	BounceRate         float64
	AvgSessionDuration float64
}

type PageStat struct {
	Path      string
	Pageviews int
}

type SourceStat struct {
	Source   string
	Sessions int
}

// Report bundles the traffic totals, bucketed series, and the two
// non-bucketed breakdowns. Demo is set when the data came from the
// offline generator rather than the analytics API.
type Report struct {
	Totals   Totals
	Series   []SeriesPoint
	TopPages []PageStat
	Sources  []SourceStat
	Demo     bool
}
