package usecase

import (
	"context"
	"log"
	"sync"

	"dashboard-analytics-service/internal/seoaudit/core/domain"
	"dashboard-analytics-service/internal/seoaudit/core/ports"
)

// GetAuditUseCase runs the mobile and desktop audits in parallel and
// compares them. Same mock-on-failure policy as the product-analytics
// route: a disabled provider or an upstream error yields deterministic
// mock data rather than an error.
type GetAuditUseCase struct {
	auditor ports.PageAuditPort // nil when the integration is disabled
}

func NewGetAuditUseCase(auditor ports.PageAuditPort) *GetAuditUseCase {
	return &GetAuditUseCase{auditor: auditor}
}

func (uc *GetAuditUseCase) Execute(ctx context.Context, pageURL string) (*domain.Audit, error) {
	if uc.auditor == nil {
		return mockAudit(pageURL), nil
	}

	var (
		wg sync.WaitGroup

		mobile, desktop       *domain.Report
		mobileErr, desktopErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		mobile, mobileErr = uc.auditor.Audit(ctx, pageURL, ports.StrategyMobile)
	}()
	go func() {
		defer wg.Done()
		desktop, desktopErr = uc.auditor.Audit(ctx, pageURL, ports.StrategyDesktop)
	}()
	wg.Wait()

	if mobileErr != nil || desktopErr != nil {
		log.Printf("seoaudit: upstream failed for %s, serving mock data (mobile: %v, desktop: %v)",
			pageURL, mobileErr, desktopErr)
		return mockAudit(pageURL), nil
	}

	return &domain.Audit{URL: pageURL, Mobile: *mobile, Desktop: *desktop}, nil
}

func mockAudit(pageURL string) *domain.Audit {
	return &domain.Audit{
		URL: pageURL,
		Mobile: domain.Report{
			Performance:   68,
			Accessibility: 92,
			BestPractices: 88,
			SEO:           95,

			FirstContentfulPaintMs:   2100,
			LargestContentfulPaintMs: 3400,
			CumulativeLayoutShift:    0.08,
			TotalBlockingTimeMs:      310,
		},
		Desktop: domain.Report{
			Performance:   89,
			Accessibility: 93,
			BestPractices: 90,
			SEO:           96,

			FirstContentfulPaintMs:   900,
			LargestContentfulPaintMs: 1500,
			CumulativeLayoutShift:    0.02,
			TotalBlockingTimeMs:      90,
		},
		Mock: true,
	}
}
