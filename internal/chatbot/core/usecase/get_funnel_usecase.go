package usecase

import (
	"context"
	"log"
	"strings"

	"dashboard-analytics-service/internal/chatbot/core/domain"
	"dashboard-analytics-service/internal/chatbot/core/ports"
	"dashboard-analytics-service/internal/platform/daterange"
)

type GetFunnelUseCase struct {
	reader ports.ConversationReaderPort
}

func NewGetFunnelUseCase(reader ports.ConversationReaderPort) *GetFunnelUseCase {
	return &GetFunnelUseCase{reader: reader}
}

// Execute reduces the three row sets to the four ordered conversion
// counts (sessions, forms, requests, completed requests), both as
// period totals and as one point per calendar day. The funnel is always
// daily regardless of the caller's granularity. Fetch failures degrade
// to zero, same policy as the series usecase.
func (uc *GetFunnelUseCase) Execute(ctx context.Context, r daterange.Range) (*domain.Funnel, error) {
	msgs, err := uc.reader.FetchMessages(ctx, r)
	if err != nil {
		log.Printf("funnel: message fetch failed, degrading to zero: %v", err)
		return &domain.Funnel{Series: []domain.FunnelPoint{}, Degraded: true}, nil
	}
	forms, err := uc.reader.FetchFormSubmissions(ctx, r)
	if err != nil {
		log.Printf("funnel: form fetch failed, degrading to zero: %v", err)
		return &domain.Funnel{Series: []domain.FunnelPoint{}, Degraded: true}, nil
	}
	reqs, err := uc.reader.FetchPropertyRequests(ctx, r)
	if err != nil {
		log.Printf("funnel: request fetch failed, degrading to zero: %v", err)
		return &domain.Funnel{Series: []domain.FunnelPoint{}, Degraded: true}, nil
	}

	buckets := r.Buckets(daterange.GranularityDay)
	points := make([]domain.FunnelPoint, len(buckets))
	for i, ts := range buckets {
		points[i].Ts = ts
	}

	daySessions := make([]map[string]struct{}, len(buckets))
	for _, m := range msgs {
		i := r.BucketIndex(m.CreatedAt, daterange.GranularityDay)
		if i < 0 {
			continue
		}
		if daySessions[i] == nil {
			daySessions[i] = make(map[string]struct{})
		}
		daySessions[i][m.SessionID] = struct{}{}
	}
	for i := range points {
		points[i].Stages.Sessions = len(daySessions[i])
	}
	for _, f := range forms {
		if i := r.BucketIndex(f.CreatedAt, daterange.GranularityDay); i >= 0 {
			points[i].Stages.Forms++
		}
	}
	for _, q := range reqs {
		i := r.BucketIndex(q.CreatedAt, daterange.GranularityDay)
		if i < 0 {
			continue
		}
		points[i].Stages.Requests++
		if isCompleted(q) {
			points[i].Stages.CompletedRequests++
		}
	}

	total := domain.FunnelStages{
		Sessions: len(groupSessions(msgs)),
		Forms:    len(forms),
		Requests: len(reqs),
	}
	for _, q := range reqs {
		if isCompleted(q) {
			total.CompletedRequests++
		}
	}

	return &domain.Funnel{ByStage: total, Series: points}, nil
}

func isCompleted(q domain.PropertyRequest) bool {
	return strings.EqualFold(q.Status, "completed")
}
