package fiber

import (
	chatbotDomain "dashboard-analytics-service/internal/chatbot/core/domain"
	"dashboard-analytics-service/internal/overview/core/domain"
	"dashboard-analytics-service/internal/platform/daterange"
)

type OverviewResponse struct {
	Success bool         `json:"success"`
	Data    OverviewData `json:"data"`
	Meta    Meta         `json:"meta"`
}

type Meta struct {
	GeneratedAt string `json:"generatedAt"`
	RequestID   string `json:"requestId"`
}

type OverviewData struct {
	Range       RangeDTO  `json:"range"`
	SourcesNote string    `json:"sourcesNote"`
	KPIs        KPISetDTO `json:"kpis"`
	Series      SeriesDTO `json:"series"`
	Top         TopDTO    `json:"top"`
}

type RangeDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type KPIDTO struct {
	Current float64 `json:"current"`
	Trend   string  `json:"trend"`
	Source  string  `json:"source"`
}

type KPISetDTO struct {
	TotalUsers         KPIDTO `json:"totalUsers"`
	TotalSessions      KPIDTO `json:"totalSessions"`
	TotalPageviews     KPIDTO `json:"totalPageviews"`
	TodayUsers         KPIDTO `json:"todayUsers"`
	TotalClicks        KPIDTO `json:"totalClicks"`
	TotalImpressions   KPIDTO `json:"totalImpressions"`
	AvgCTR             KPIDTO `json:"avgCtr"`
	AvgPosition        KPIDTO `json:"avgPosition"`
	TotalConversations KPIDTO `json:"totalConversations"`
	PropertyInquiries  KPIDTO `json:"propertyInquiries"`
	AssessmentRequests KPIDTO `json:"assessmentRequests"`
	LeadConversion     KPIDTO `json:"leadConversion"`
	CompletionRate     KPIDTO `json:"completionRate"`
}

type SeriesDTO struct {
	Traffic []TrafficPointDTO `json:"traffic"`
	Search  []SearchPointDTO  `json:"search"`
	Chatbot []ChatbotPointDTO `json:"chatbot"`
	Funnel  []FunnelPointDTO  `json:"funnel"`
}

type TrafficPointDTO struct {
	Ts                 string  `json:"ts"`
	Users              int     `json:"users"`
	Sessions           int     `json:"sessions"`
	Pageviews          int     `json:"pageviews"`
	BounceRate         float64 `json:"bounceRate"`
	AvgSessionDuration float64 `json:"avgSessionDuration"`
}

type SearchPointDTO struct {
	Ts          string  `json:"ts"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	AvgPosition float64 `json:"avgPosition"`
}

type ChatbotPointDTO struct {
	Ts                 string  `json:"ts"`
	Conversations      int     `json:"conversations"`
	PropertyInquiries  int     `json:"propertyInquiries"`
	AssessmentRequests int     `json:"assessmentRequests"`
	CompletionRate     float64 `json:"completionRate"`
}

type FunnelPointDTO struct {
	Ts                string `json:"ts"`
	Sessions          int    `json:"sessions"`
	Forms             int    `json:"forms"`
	Requests          int    `json:"requests"`
	CompletedRequests int    `json:"completedRequests"`
}

type TopDTO struct {
	Pages   []PageStatDTO   `json:"pages"`
	Sources []SourceStatDTO `json:"sources"`
}

type PageStatDTO struct {
	Path      string `json:"path"`
	Pageviews int    `json:"pageviews"`
}

type SourceStatDTO struct {
	Source   string `json:"source"`
	Sessions int    `json:"sessions"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error" example:"Invalid date format"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func toOverviewData(o *domain.Overview) OverviewData {
	data := OverviewData{
		Range: RangeDTO{
			From: o.Range.From.Format(daterange.Layout),
			To:   o.Range.To.Format(daterange.Layout),
		},
		SourcesNote: o.SourcesNote,
		KPIs: KPISetDTO{
			TotalUsers:         toKPI(o.KPIs.TotalUsers),
			TotalSessions:      toKPI(o.KPIs.TotalSessions),
			TotalPageviews:     toKPI(o.KPIs.TotalPageviews),
			TodayUsers:         toKPI(o.KPIs.TodayUsers),
			TotalClicks:        toKPI(o.KPIs.TotalClicks),
			TotalImpressions:   toKPI(o.KPIs.TotalImpressions),
			AvgCTR:             toKPI(o.KPIs.AvgCTR),
			AvgPosition:        toKPI(o.KPIs.AvgPosition),
			TotalConversations: toKPI(o.KPIs.TotalConversations),
			PropertyInquiries:  toKPI(o.KPIs.PropertyInquiries),
			AssessmentRequests: toKPI(o.KPIs.AssessmentRequests),
			LeadConversion:     toKPI(o.KPIs.LeadConversion),
			CompletionRate:     toKPI(o.KPIs.CompletionRate),
		},
		Series: SeriesDTO{
			Traffic: make([]TrafficPointDTO, 0, len(o.Series.Traffic)),
			Search:  make([]SearchPointDTO, 0, len(o.Series.Search)),
			Chatbot: make([]ChatbotPointDTO, 0, len(o.Series.Chatbot)),
			Funnel:  make([]FunnelPointDTO, 0, len(o.Series.Funnel)),
		},
		Top: TopDTO{
			Pages:   make([]PageStatDTO, 0, len(o.Top.Pages)),
			Sources: make([]SourceStatDTO, 0, len(o.Top.Sources)),
		},
	}

	for _, p := range o.Series.Traffic {
		data.Series.Traffic = append(data.Series.Traffic, TrafficPointDTO{
			Ts:                 p.Ts.Format(daterange.Layout),
			Users:              p.Users,
			Sessions:           p.Sessions,
			Pageviews:          p.Pageviews,
			BounceRate:         p.BounceRate,
			AvgSessionDuration: p.AvgSessionDuration,
		})
	}
	for _, p := range o.Series.Search {
		data.Series.Search = append(data.Series.Search, SearchPointDTO{
			Ts:          p.Ts.Format(daterange.Layout),
			Clicks:      p.Clicks,
			Impressions: p.Impressions,
			CTR:         p.CTR,
			AvgPosition: p.AvgPosition,
		})
	}
	for _, p := range o.Series.Chatbot {
		data.Series.Chatbot = append(data.Series.Chatbot, ChatbotPointDTO{
			Ts:                 p.Ts.Format(daterange.Layout),
			Conversations:      p.Conversations,
			PropertyInquiries:  p.PropertyInquiries,
			AssessmentRequests: p.AssessmentRequests,
			CompletionRate:     p.CompletionRate,
		})
	}
	for _, p := range o.Series.Funnel {
		data.Series.Funnel = append(data.Series.Funnel, toFunnelPoint(p))
	}
	for _, p := range o.Top.Pages {
		data.Top.Pages = append(data.Top.Pages, PageStatDTO{Path: p.Path, Pageviews: p.Pageviews})
	}
	for _, s := range o.Top.Sources {
		data.Top.Sources = append(data.Top.Sources, SourceStatDTO{Source: s.Source, Sessions: s.Sessions})
	}

	return data
}

func toKPI(k domain.KPI) KPIDTO {
	return KPIDTO{Current: k.Current, Trend: k.Trend, Source: k.Source}
}

func toFunnelPoint(p chatbotDomain.FunnelPoint) FunnelPointDTO {
	return FunnelPointDTO{
		Ts:                p.Ts.Format(daterange.Layout),
		Sessions:          p.Stages.Sessions,
		Forms:             p.Stages.Forms,
		Requests:          p.Stages.Requests,
		CompletedRequests: p.Stages.CompletedRequests,
	}
}
