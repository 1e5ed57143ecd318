package domain

// Report holds one Lighthouse-style run. Category scores are 0-100;
// the lab metrics use the units the UI renders (milliseconds, unitless
// CLS).
type Report struct {
	Performance   float64
	Accessibility float64
	BestPractices float64
	SEO           float64

	FirstContentfulPaintMs   float64
	LargestContentfulPaintMs float64
	CumulativeLayoutShift    float64
	TotalBlockingTimeMs      float64
}

// Audit is the mobile-vs-desktop comparison for one URL. Mock marks
// fallback data served when the provider is disabled or failing.
type Audit struct {
	URL     string
	Mobile  Report
	Desktop Report
	Mock    bool
}
