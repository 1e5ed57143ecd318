package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"dashboard-analytics-service/internal/seoaudit/core/domain"
	"dashboard-analytics-service/internal/seoaudit/core/ports"
	"dashboard-analytics-service/internal/seoaudit/core/usecase"
)

type fakePageAuditor struct {
	AuditFn func(ctx context.Context, pageURL string, strategy ports.Strategy) (*domain.Report, error)
	calls   int64
}

func (f *fakePageAuditor) Audit(ctx context.Context, pageURL string, strategy ports.Strategy) (*domain.Report, error) {
	atomic.AddInt64(&f.calls, 1)
	return f.AuditFn(ctx, pageURL, strategy)
}

func TestGetAudit_DisabledServesMock(t *testing.T) {
	uc := usecase.NewGetAuditUseCase(nil)

	res, err := uc.Execute(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.Mock {
		t.Fatalf("expected mock audit with disabled provider")
	}
	if res.URL != "https://example.com" {
		t.Fatalf("mock must echo the requested URL, got %s", res.URL)
	}
	if res.Mobile.Performance == 0 || res.Desktop.Performance == 0 {
		t.Fatalf("expected populated mock scores, got %+v", res)
	}
}

func TestGetAudit_RunsBothStrategies(t *testing.T) {
	auditor := &fakePageAuditor{
		AuditFn: func(ctx context.Context, pageURL string, strategy ports.Strategy) (*domain.Report, error) {
			switch strategy {
			case ports.StrategyMobile:
				return &domain.Report{Performance: 61}, nil
			case ports.StrategyDesktop:
				return &domain.Report{Performance: 93}, nil
			default:
				return nil, errors.New("unknown strategy")
			}
		},
	}

	uc := usecase.NewGetAuditUseCase(auditor)
	res, err := uc.Execute(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if got := atomic.LoadInt64(&auditor.calls); got != 2 {
		t.Fatalf("expected 2 audit calls, got %d", got)
	}
	if res.Mock {
		t.Fatalf("live audit must not carry the mock flag")
	}
	if res.Mobile.Performance != 61 || res.Desktop.Performance != 93 {
		t.Fatalf("strategies mixed up: %+v", res)
	}
}

func TestGetAudit_PartialFailureServesMock(t *testing.T) {
	auditor := &fakePageAuditor{
		AuditFn: func(ctx context.Context, pageURL string, strategy ports.Strategy) (*domain.Report, error) {
			if strategy == ports.StrategyDesktop {
				return nil, errors.New("quota exceeded")
			}
			return &domain.Report{Performance: 70}, nil
		},
	}

	uc := usecase.NewGetAuditUseCase(auditor)
	res, err := uc.Execute(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("upstream failure must not surface, got %v", err)
	}
	if !res.Mock {
		t.Fatalf("expected mock fallback when one strategy fails")
	}
}
