package usecase

import (
	"context"
	"log"
	"sort"

	"dashboard-analytics-service/internal/chatbot/core/domain"
	"dashboard-analytics-service/internal/chatbot/core/ports"
	"dashboard-analytics-service/internal/platform/daterange"
)

// A session counts as completed once it reaches this many messages.
const completedSessionThreshold = 3

type GetChatbotSeriesInput struct {
	Range       daterange.Range
	Granularity daterange.Granularity
}

type GetChatbotSeriesUseCase struct {
	reader ports.ConversationReaderPort
}

func NewGetChatbotSeriesUseCase(reader ports.ConversationReaderPort) *GetChatbotSeriesUseCase {
	return &GetChatbotSeriesUseCase{reader: reader}
}

// Execute builds period totals and one point per bucket. If any of the
// three row fetches fails the whole call degrades to an all-zero result
// with an empty series; this adapter never partially returns.
func (uc *GetChatbotSeriesUseCase) Execute(ctx context.Context, in GetChatbotSeriesInput) (*domain.Series, error) {
	msgs, err := uc.reader.FetchMessages(ctx, in.Range)
	if err != nil {
		log.Printf("chatbot: message fetch failed, degrading to zero: %v", err)
		return &domain.Series{Series: []domain.SeriesPoint{}, Degraded: true}, nil
	}
	forms, err := uc.reader.FetchFormSubmissions(ctx, in.Range)
	if err != nil {
		log.Printf("chatbot: form fetch failed, degrading to zero: %v", err)
		return &domain.Series{Series: []domain.SeriesPoint{}, Degraded: true}, nil
	}
	reqs, err := uc.reader.FetchPropertyRequests(ctx, in.Range)
	if err != nil {
		log.Printf("chatbot: request fetch failed, degrading to zero: %v", err)
		return &domain.Series{Series: []domain.SeriesPoint{}, Degraded: true}, nil
	}

	res := &domain.Series{
		Totals: computeTotals(msgs, forms, reqs),
		Series: bucketSeries(in.Range, in.Granularity, msgs, forms, reqs),
	}
	return res, nil
}

func computeTotals(msgs []domain.Message, forms []domain.FormSubmission, reqs []domain.PropertyRequest) domain.Totals {
	sessions := groupSessions(msgs)
	completed := countCompleted(sessions)

	return domain.Totals{
		TotalConversations: len(sessions),
		PropertyInquiries:  len(forms),
		AssessmentRequests: len(reqs),
		LeadConversion:     float64(len(reqs)) / float64(maxInt(len(forms), 1)),
		CompletionRate:     float64(completed) / float64(maxInt(len(sessions), 1)),
		MessageDepthP50:    medianDepth(sessions),
	}
}

func bucketSeries(r daterange.Range, g daterange.Granularity, msgs []domain.Message, forms []domain.FormSubmission, reqs []domain.PropertyRequest) []domain.SeriesPoint {
	buckets := r.Buckets(g)

	bucketMsgs := make([][]domain.Message, len(buckets))
	for _, m := range msgs {
		if i := r.BucketIndex(m.CreatedAt, g); i >= 0 {
			bucketMsgs[i] = append(bucketMsgs[i], m)
		}
	}
	formCounts := make([]int, len(buckets))
	for _, f := range forms {
		if i := r.BucketIndex(f.CreatedAt, g); i >= 0 {
			formCounts[i]++
		}
	}
	reqCounts := make([]int, len(buckets))
	for _, q := range reqs {
		if i := r.BucketIndex(q.CreatedAt, g); i >= 0 {
			reqCounts[i]++
		}
	}

	points := make([]domain.SeriesPoint, 0, len(buckets))
	for i, ts := range buckets {
		sessions := groupSessions(bucketMsgs[i])
		completed := countCompleted(sessions)
		points = append(points, domain.SeriesPoint{
			Ts:                 ts,
			Conversations:      len(sessions),
			PropertyInquiries:  formCounts[i],
			AssessmentRequests: reqCounts[i],
			CompletionRate:     float64(completed) / float64(maxInt(len(sessions), 1)),
		})
	}
	return points
}

// groupSessions returns the message count per distinct session ID.
func groupSessions(msgs []domain.Message) map[string]int {
	sessions := make(map[string]int)
	for _, m := range msgs {
		sessions[m.SessionID]++
	}
	return sessions
}

func countCompleted(sessions map[string]int) int {
	completed := 0
	for _, n := range sessions {
		if n >= completedSessionThreshold {
			completed++
		}
	}
	return completed
}

// medianDepth takes the lower-middle element of the sorted per-session
// message counts. Even-length lists intentionally use index (n-1)/2
// instead of averaging the two middle values; downstream consumers
// rely on the integer result.
func medianDepth(sessions map[string]int) int {
	if len(sessions) == 0 {
		return 0
	}
	counts := make([]int, 0, len(sessions))
	for _, n := range sessions {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	return counts[(len(counts)-1)/2]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
