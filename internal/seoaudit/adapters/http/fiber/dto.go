package fiber

type AuditResponse struct {
	Success bool      `json:"success"`
	Data    AuditData `json:"data"`
}

type AuditData struct {
	URL     string    `json:"url"`
	Mobile  ReportDTO `json:"mobile"`
	Desktop ReportDTO `json:"desktop"`
	Mock    bool      `json:"mock"`
}

type ReportDTO struct {
	Performance   float64 `json:"performance"`
	Accessibility float64 `json:"accessibility"`
	BestPractices float64 `json:"bestPractices"`
	SEO           float64 `json:"seo"`

	FirstContentfulPaintMs   float64 `json:"fcpMs"`
	LargestContentfulPaintMs float64 `json:"lcpMs"`
	CumulativeLayoutShift    float64 `json:"cls"`
	TotalBlockingTimeMs      float64 `json:"tbtMs"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
