package ports

import (
	"context"

	"dashboard-analytics-service/internal/seoaudit/core/domain"
)

type Strategy string

const (
	StrategyMobile  Strategy = "mobile"
	StrategyDesktop Strategy = "desktop"
)

type PageAuditPort interface {
	Audit(ctx context.Context, pageURL string, strategy Strategy) (*domain.Report, error)
}
