package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	chatbotDomain "dashboard-analytics-service/internal/chatbot/core/domain"
	chatbotUsecase "dashboard-analytics-service/internal/chatbot/core/usecase"
	"dashboard-analytics-service/internal/overview/core/domain"
	"dashboard-analytics-service/internal/platform/daterange"
	searchDomain "dashboard-analytics-service/internal/search/core/domain"
	searchUsecase "dashboard-analytics-service/internal/search/core/usecase"
	trafficDomain "dashboard-analytics-service/internal/traffic/core/domain"
	trafficUsecase "dashboard-analytics-service/internal/traffic/core/usecase"
)

// Source labels attached to each KPI so the UI can attribute numbers.
const (
	sourceTraffic = "ga4"
	sourceSearch  = "search-console"
	sourceChatbot = "chatbot"
)

type ChatbotSeriesUseCase interface {
	Execute(ctx context.Context, in chatbotUsecase.GetChatbotSeriesInput) (*chatbotDomain.Series, error)
}

type FunnelUseCase interface {
	Execute(ctx context.Context, r daterange.Range) (*chatbotDomain.Funnel, error)
}

type SearchSeriesUseCase interface {
	Execute(ctx context.Context, in searchUsecase.GetSearchSeriesInput) (*searchDomain.Series, error)
}

type TrafficSeriesUseCase interface {
	Execute(ctx context.Context, in trafficUsecase.GetTrafficSeriesInput) (*trafficDomain.Report, error)
}

type GetOverviewInput struct {
	Range       daterange.Range
	Granularity daterange.Granularity
}

// GetOverviewUseCase fans out to the four source adapters for the
// current and previous periods, computes deltas, and assembles the
// unified envelope. One failing source degrades to nil without
// aborting the others; there are no retries within an invocation.
type GetOverviewUseCase struct {
	chatbot ChatbotSeriesUseCase
	funnel  FunnelUseCase
	search  SearchSeriesUseCase
	traffic TrafficSeriesUseCase
	timeout time.Duration
}

func NewGetOverviewUseCase(
	chatbot ChatbotSeriesUseCase,
	funnel FunnelUseCase,
	search SearchSeriesUseCase,
	traffic TrafficSeriesUseCase,
	timeout time.Duration,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		chatbot: chatbot,
		funnel:  funnel,
		search:  search,
		traffic: traffic,
		timeout: timeout,
	}
}

type sourceSet struct {
	chatbot *chatbotDomain.Series
	funnel  *chatbotDomain.Funnel
	search  *searchDomain.Series
	traffic *trafficDomain.Report
}

type fetchFlags struct {
	chatbot bool
	funnel  bool
	search  bool
	traffic bool
}

func (uc *GetOverviewUseCase) Execute(ctx context.Context, in GetOverviewInput) (*domain.Overview, error) {
	if in.Range.From.After(in.Range.To) {
		return nil, daterange.ErrInvalidRange
	}
	prev := in.Range.Previous()

	// Batch 1: all four current-period sources in parallel.
	cur := uc.fetchPeriod(ctx, in.Range, in.Granularity, fetchFlags{
		chatbot: true, funnel: true, search: true, traffic: true,
	})

	// Batch 2: previous period, only for sources whose current-period
	// call succeeded. The funnel feeds no KPI delta so it is skipped.
	prevSet := uc.fetchPeriod(ctx, prev, in.Granularity, fetchFlags{
		chatbot: cur.chatbot != nil,
		search:  cur.search != nil,
		traffic: cur.traffic != nil,
	})

	// Batch 3: today-vs-yesterday traffic mini metric.
	todayUsers, yesterdayUsers := uc.fetchTodayYesterday(ctx, cur.traffic != nil)

	out := &domain.Overview{
		Range:       in.Range,
		SourcesNote: sourcesNote(cur),
		KPIs:        buildKPIs(cur, prevSet, todayUsers, yesterdayUsers),
		Series: domain.Series{
			Traffic: []trafficDomain.SeriesPoint{},
			Search:  []searchDomain.SeriesPoint{},
			Chatbot: []chatbotDomain.SeriesPoint{},
			Funnel:  []chatbotDomain.FunnelPoint{},
		},
		Top: domain.Top{
			Pages:   []trafficDomain.PageStat{},
			Sources: []trafficDomain.SourceStat{},
		},
	}

	if cur.traffic != nil {
		out.Series.Traffic = cur.traffic.Series
		out.Top.Pages = cur.traffic.TopPages
		out.Top.Sources = cur.traffic.Sources
	}
	if cur.search != nil {
		out.Series.Search = cur.search.Series
	}
	if cur.chatbot != nil {
		out.Series.Chatbot = cur.chatbot.Series
	}
	if cur.funnel != nil {
		out.Series.Funnel = cur.funnel.Series
	}

	return out, nil
}

// fetchPeriod runs the requested source calls in parallel. A failing
// call logs and leaves its slot nil; siblings are unaffected. Each call
// carries its own timeout so one hung upstream cannot stall the whole
// aggregation indefinitely.
func (uc *GetOverviewUseCase) fetchPeriod(ctx context.Context, r daterange.Range, g daterange.Granularity, want fetchFlags) sourceSet {
	var (
		wg  sync.WaitGroup
		out sourceSet
	)

	if want.chatbot {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, uc.timeout)
			defer cancel()
			res, err := uc.chatbot.Execute(cctx, chatbotUsecase.GetChatbotSeriesInput{Range: r, Granularity: g})
			if err != nil {
				log.Printf("overview: chatbot series %s failed: %v", r, err)
				return
			}
			out.chatbot = res
		}()
	}
	if want.funnel {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, uc.timeout)
			defer cancel()
			res, err := uc.funnel.Execute(cctx, r)
			if err != nil {
				log.Printf("overview: funnel %s failed: %v", r, err)
				return
			}
			out.funnel = res
		}()
	}
	if want.search {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, uc.timeout)
			defer cancel()
			res, err := uc.search.Execute(cctx, searchUsecase.GetSearchSeriesInput{Range: r, Granularity: g})
			if err != nil {
				log.Printf("overview: search series %s failed: %v", r, err)
				return
			}
			out.search = res
		}()
	}
	if want.traffic {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, uc.timeout)
			defer cancel()
			res, err := uc.traffic.Execute(cctx, trafficUsecase.GetTrafficSeriesInput{Range: r, Granularity: g})
			if err != nil {
				log.Printf("overview: traffic series %s failed: %v", r, err)
				return
			}
			out.traffic = res
		}()
	}

	wg.Wait()
	return out
}

// fetchTodayYesterday loads the single-day user counts backing the
// today-vs-yesterday mini metric. Skipped entirely when the traffic
// source already failed for the main period.
func (uc *GetOverviewUseCase) fetchTodayYesterday(ctx context.Context, trafficLive bool) (float64, float64) {
	if !trafficLive {
		return 0, 0
	}

	today := daterange.LastNDays(1)
	yesterday := today.Previous()

	var (
		wg             sync.WaitGroup
		todayUsers     float64
		yesterdayUsers float64
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		todayUsers = uc.dayUsers(ctx, today)
	}()
	go func() {
		defer wg.Done()
		yesterdayUsers = uc.dayUsers(ctx, yesterday)
	}()
	wg.Wait()

	return todayUsers, yesterdayUsers
}

func (uc *GetOverviewUseCase) dayUsers(ctx context.Context, day daterange.Range) float64 {
	cctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res, err := uc.traffic.Execute(cctx, trafficUsecase.GetTrafficSeriesInput{
		Range:       day,
		Granularity: daterange.GranularityDay,
	})
	if err != nil {
		log.Printf("overview: single-day traffic %s failed: %v", day, err)
		return 0
	}
	return float64(res.Totals.Users)
}

func kpi(current, previous float64, source string) domain.KPI {
	return domain.KPI{
		Current: current,
		Trend:   daterange.Trend(current, previous),
		Source:  source,
	}
}

func buildKPIs(cur, prev sourceSet, todayUsers, yesterdayUsers float64) domain.KPISet {
	k := domain.KPISet{
		TotalUsers:         kpi(0, 0, sourceTraffic),
		TotalSessions:      kpi(0, 0, sourceTraffic),
		TotalPageviews:     kpi(0, 0, sourceTraffic),
		TodayUsers:         kpi(0, 0, sourceTraffic),
		TotalClicks:        kpi(0, 0, sourceSearch),
		TotalImpressions:   kpi(0, 0, sourceSearch),
		AvgCTR:             kpi(0, 0, sourceSearch),
		AvgPosition:        kpi(0, 0, sourceSearch),
		TotalConversations: kpi(0, 0, sourceChatbot),
		PropertyInquiries:  kpi(0, 0, sourceChatbot),
		AssessmentRequests: kpi(0, 0, sourceChatbot),
		LeadConversion:     kpi(0, 0, sourceChatbot),
		CompletionRate:     kpi(0, 0, sourceChatbot),
	}

	if cur.traffic != nil {
		var p trafficDomain.Totals
		if prev.traffic != nil {
			p = prev.traffic.Totals
		}
		c := cur.traffic.Totals
		k.TotalUsers = kpi(float64(c.Users), float64(p.Users), sourceTraffic)
		k.TotalSessions = kpi(float64(c.Sessions), float64(p.Sessions), sourceTraffic)
		k.TotalPageviews = kpi(float64(c.Pageviews), float64(p.Pageviews), sourceTraffic)
		k.TodayUsers = kpi(todayUsers, yesterdayUsers, sourceTraffic)
	}

	if cur.search != nil {
		var p searchDomain.Totals
		if prev.search != nil {
			p = prev.search.Totals
		}
		c := cur.search.Totals
		k.TotalClicks = kpi(float64(c.Clicks), float64(p.Clicks), sourceSearch)
		k.TotalImpressions = kpi(float64(c.Impressions), float64(p.Impressions), sourceSearch)
		k.AvgCTR = kpi(c.CTR, p.CTR, sourceSearch)
		k.AvgPosition = kpi(c.AvgPosition, p.AvgPosition, sourceSearch)
	}

	if cur.chatbot != nil {
		var p chatbotDomain.Totals
		if prev.chatbot != nil {
			p = prev.chatbot.Totals
		}
		c := cur.chatbot.Totals
		k.TotalConversations = kpi(float64(c.TotalConversations), float64(p.TotalConversations), sourceChatbot)
		k.PropertyInquiries = kpi(float64(c.PropertyInquiries), float64(p.PropertyInquiries), sourceChatbot)
		k.AssessmentRequests = kpi(float64(c.AssessmentRequests), float64(p.AssessmentRequests), sourceChatbot)
		k.LeadConversion = kpi(c.LeadConversion, p.LeadConversion, sourceChatbot)
		k.CompletionRate = kpi(c.CompletionRate, p.CompletionRate, sourceChatbot)
	}

	return k
}

func sourcesNote(cur sourceSet) string {
	var parts []string

	switch {
	case cur.traffic == nil:
		parts = append(parts, "traffic unavailable")
	case cur.traffic.Demo:
		parts = append(parts, "traffic: demo data")
	default:
		parts = append(parts, "traffic: live")
	}

	if cur.search == nil {
		parts = append(parts, "search unavailable")
	} else {
		if cur.search.Truncated {
			parts = append(parts, "search: live (row cap hit, totals may undercount)")
		} else {
			parts = append(parts, "search: live")
		}
	}

	switch {
	case cur.chatbot == nil:
		parts = append(parts, "chatbot unavailable")
	case cur.chatbot.Degraded:
		parts = append(parts, "chatbot: degraded (zeroed)")
	default:
		parts = append(parts, "chatbot: live")
	}

	return strings.Join(parts, "; ")
}
