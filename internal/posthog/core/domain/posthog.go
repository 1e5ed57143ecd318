package domain

import "time"

type KPIs struct {
	ActiveUsers        int
	TotalEvents        int
	Pageviews          int
	AvgSessionDuration float64
}

type SeriesPoint struct {
	Ts          time.Time
	Events      int
	ActiveUsers int
}

type FunnelStep struct {
	Name           string
	Count          int
	ConversionRate float64
}

type Cohort struct {
	Week          string
	Users         int
	RetentionRate float64
}

// Metrics is the product-analytics snapshot. Mock marks deterministic
// fallback data served when the integration is disabled or failing.
type Metrics struct {
	KPIs    KPIs
	Series  []SeriesPoint
	Funnel  []FunnelStep
	Cohorts []Cohort
	Mock    bool
}
