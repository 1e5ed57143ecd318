package fiber

import (
	"context"
	"net/http"
	"net/url"

	"dashboard-analytics-service/internal/platform/cache"
	"dashboard-analytics-service/internal/seoaudit/core/domain"

	"github.com/gofiber/fiber/v2"
)

type GetAuditUseCase interface {
	Execute(ctx context.Context, pageURL string) (*domain.Audit, error)
}

type AuditHandler struct {
	uc         GetAuditUseCase
	cache      *cache.RequestCache
	defaultURL string
}

func NewAuditHandler(uc GetAuditUseCase, c *cache.RequestCache, defaultURL string) *AuditHandler {
	return &AuditHandler{uc: uc, cache: c, defaultURL: defaultURL}
}

// GetAudit godoc
// @Summary Mobile-vs-desktop page-performance comparison
// @Description Cached for five minutes; serves mock data when the provider is disabled or failing
// @Tags SEOAudit
// @Produce json
// @Param url query string false "Page URL to audit; defaults to the configured target"
// @Success 200 {object} AuditResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/seo-audit [get]
func (h *AuditHandler) GetAudit(c *fiber.Ctx) error {
	pageURL := c.Query("url", h.defaultURL)
	if pageURL == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Missing url parameter",
			Details: "pass ?url= or configure SEO_AUDIT_DEFAULT_URL",
		})
	}
	if u, err := url.Parse(pageURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid url parameter",
			Details: "url must be absolute http(s)",
		})
	}

	res, err := cache.Fetch(c.UserContext(), h.cache, "seo-audit|"+pageURL, func(ctx context.Context) (*domain.Audit, error) {
		return h.uc.Execute(ctx, pageURL)
	})
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Failed to load audit",
			Details: err.Error(),
		})
	}

	return c.Status(http.StatusOK).JSON(AuditResponse{
		Success: true,
		Data: AuditData{
			URL:     res.URL,
			Mobile:  toReport(res.Mobile),
			Desktop: toReport(res.Desktop),
			Mock:    res.Mock,
		},
	})
}

func toReport(r domain.Report) ReportDTO {
	return ReportDTO{
		Performance:   r.Performance,
		Accessibility: r.Accessibility,
		BestPractices: r.BestPractices,
		SEO:           r.SEO,

		FirstContentfulPaintMs:   r.FirstContentfulPaintMs,
		LargestContentfulPaintMs: r.LargestContentfulPaintMs,
		CumulativeLayoutShift:    r.CumulativeLayoutShift,
		TotalBlockingTimeMs:      r.TotalBlockingTimeMs,
	}
}
