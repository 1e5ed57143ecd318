package usecase_test

import (
	"context"
	"errors"
	"testing"

	"dashboard-analytics-service/internal/chatbot/core/domain"
	"dashboard-analytics-service/internal/chatbot/core/usecase"
	"dashboard-analytics-service/internal/platform/daterange"
)

func TestGetFunnel_StageCounts(t *testing.T) {
	reader := &fakeConversationReader{
		MessagesFn: func(ctx context.Context, r daterange.Range) ([]domain.Message, error) {
			return []domain.Message{
				{SessionID: "a", CreatedAt: at(t, "2024-01-01T09:00:00Z")},
				{SessionID: "a", CreatedAt: at(t, "2024-01-01T09:01:00Z")},
				{SessionID: "b", CreatedAt: at(t, "2024-01-02T09:00:00Z")},
			}, nil
		},
		FormsFn: func(ctx context.Context, r daterange.Range) ([]domain.FormSubmission, error) {
			return []domain.FormSubmission{
				{CreatedAt: at(t, "2024-01-01T10:00:00Z")},
			}, nil
		},
		RequestsFn: func(ctx context.Context, r daterange.Range) ([]domain.PropertyRequest, error) {
			return []domain.PropertyRequest{
				{CreatedAt: at(t, "2024-01-01T12:00:00Z"), Status: "completed"},
				{CreatedAt: at(t, "2024-01-02T12:00:00Z"), Status: "pending"},
			}, nil
		},
	}

	uc := usecase.NewGetFunnelUseCase(reader)
	res, err := uc.Execute(context.Background(), testRange(t, "2024-01-01", "2024-01-03"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	want := domain.FunnelStages{Sessions: 2, Forms: 1, Requests: 2, CompletedRequests: 1}
	if res.ByStage != want {
		t.Fatalf("expected stages %+v, got %+v", want, res.ByStage)
	}

	// Always one point per calendar day.
	if len(res.Series) != 3 {
		t.Fatalf("expected 3 daily points, got %d", len(res.Series))
	}
	if res.Series[0].Stages.Sessions != 1 || res.Series[0].Stages.CompletedRequests != 1 {
		t.Fatalf("unexpected day 0 stages: %+v", res.Series[0].Stages)
	}
	if res.Series[2].Stages != (domain.FunnelStages{}) {
		t.Fatalf("expected zero stages on empty day, got %+v", res.Series[2].Stages)
	}
}

func TestGetFunnel_FetchErrorDegradesToZero(t *testing.T) {
	reader := &fakeConversationReader{
		RequestsFn: func(ctx context.Context, r daterange.Range) ([]domain.PropertyRequest, error) {
			return nil, errors.New("timeout")
		},
	}

	uc := usecase.NewGetFunnelUseCase(reader)
	res, err := uc.Execute(context.Background(), testRange(t, "2024-01-01", "2024-01-02"))
	if err != nil {
		t.Fatalf("degraded call must not error, got %v", err)
	}
	if !res.Degraded {
		t.Fatalf("expected degraded result")
	}
	if res.ByStage != (domain.FunnelStages{}) {
		t.Fatalf("expected all-zero stages, got %+v", res.ByStage)
	}
	if len(res.Series) != 0 {
		t.Fatalf("expected empty series, got %d points", len(res.Series))
	}
}
