package domain

import (
	chatbot "dashboard-analytics-service/internal/chatbot/core/domain"
	"dashboard-analytics-service/internal/platform/daterange"
	search "dashboard-analytics-service/internal/search/core/domain"
	traffic "dashboard-analytics-service/internal/traffic/core/domain"
)

// KPI is one named dashboard metric: its current-period value, the
// period-over-period trend string, and the label of the data source it
// came from.
type KPI struct {
	Current float64
	Trend   string
	Source  string
}

type KPISet struct {
	// Traffic.
	TotalUsers     KPI
	TotalSessions  KPI
	TotalPageviews KPI
	TodayUsers     KPI

	// Search.
	TotalClicks      KPI
	TotalImpressions KPI
	AvgCTR           KPI
	AvgPosition      KPI

	// Chatbot.
	TotalConversations KPI
	PropertyInquiries  KPI
	AssessmentRequests KPI
	LeadConversion     KPI
	CompletionRate     KPI
}

// Series holds the raw per-source series arrays. A failed source is an
// empty array, never nil semantics leaking to the UI.
type Series struct {
	Traffic []traffic.SeriesPoint
	Search  []search.SeriesPoint
	Chatbot []chatbot.SeriesPoint
	Funnel  []chatbot.FunnelPoint
}

type Top struct {
	Pages   []traffic.PageStat
	Sources []traffic.SourceStat
}

// Overview is the unified envelope the dashboard renders from.
type Overview struct {
	Range       daterange.Range
	SourcesNote string
	KPIs        KPISet
	Series      Series
	Top         Top
}
