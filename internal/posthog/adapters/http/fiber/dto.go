package fiber

type PostHogResponse struct {
	Success bool        `json:"success"`
	Data    PostHogData `json:"data"`
}

type PostHogData struct {
	KPIs    KPIsDTO          `json:"kpis"`
	Series  []SeriesPointDTO `json:"series"`
	Funnel  []FunnelStepDTO  `json:"funnel"`
	Cohorts []CohortDTO      `json:"cohorts"`
	Mock    bool             `json:"mock"`
}

type KPIsDTO struct {
	ActiveUsers        int     `json:"activeUsers"`
	TotalEvents        int     `json:"totalEvents"`
	Pageviews          int     `json:"pageviews"`
	AvgSessionDuration float64 `json:"avgSessionDuration"`
}

type SeriesPointDTO struct {
	Ts          string `json:"ts"`
	Events      int    `json:"events"`
	ActiveUsers int    `json:"activeUsers"`
}

type FunnelStepDTO struct {
	Name           string  `json:"name"`
	Count          int     `json:"count"`
	ConversionRate float64 `json:"conversionRate"`
}

type CohortDTO struct {
	Week          string  `json:"week"`
	Users         int     `json:"users"`
	RetentionRate float64 `json:"retentionRate"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
