package ports

import (
	"context"

	"dashboard-analytics-service/internal/chatbot/core/domain"
	"dashboard-analytics-service/internal/platform/daterange"
)

// ConversationReaderPort fetches the three independent chatbot row sets.
// Each result is filtered to the range (both bounds inclusive) and
// ordered ascending by timestamp.
type ConversationReaderPort interface {
	FetchMessages(ctx context.Context, r daterange.Range) ([]domain.Message, error)
	FetchFormSubmissions(ctx context.Context, r daterange.Range) ([]domain.FormSubmission, error)
	FetchPropertyRequests(ctx context.Context, r daterange.Range) ([]domain.PropertyRequest, error)
}
