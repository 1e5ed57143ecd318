package fiber

import (
	"context"
	"net/http"

	"dashboard-analytics-service/internal/platform/cache"
	"dashboard-analytics-service/internal/platform/daterange"
	"dashboard-analytics-service/internal/posthog/core/domain"

	"github.com/gofiber/fiber/v2"
)

const defaultWindowDays = 30

type GetProductMetricsUseCase interface {
	Execute(ctx context.Context, r daterange.Range) (*domain.Metrics, error)
}

type PostHogHandler struct {
	uc    GetProductMetricsUseCase
	cache *cache.RequestCache
}

func NewPostHogHandler(uc GetProductMetricsUseCase, c *cache.RequestCache) *PostHogHandler {
	return &PostHogHandler{uc: uc, cache: c}
}

// GetProductMetrics godoc
// @Summary Product-analytics KPIs, time series, funnel and cohorts
// @Description Cached for five minutes; serves mock data when the integration is disabled or failing
// @Tags PostHog
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD), defaults to 30 days ago"
// @Param to query string false "End date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} PostHogResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/posthog [get]
func (h *PostHogHandler) GetProductMetrics(c *fiber.Ctx) error {
	r := daterange.LastNDays(defaultWindowDays)
	fromStr, toStr := c.Query("from", ""), c.Query("to", "")
	if fromStr != "" || toStr != "" {
		parsed, err := daterange.ParseRange(fromStr, toStr)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "Invalid date format",
				Details: err.Error(),
			})
		}
		r = parsed
	}

	key := daterange.CacheKey("posthog", r, daterange.GranularityDay)
	res, err := cache.Fetch(c.UserContext(), h.cache, key, func(ctx context.Context) (*domain.Metrics, error) {
		return h.uc.Execute(ctx, r)
	})
	if err != nil {
		// The usecase substitutes mock data on upstream failure, so an
		// error here means the request itself was torn down.
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Failed to load product metrics",
			Details: err.Error(),
		})
	}

	return c.Status(http.StatusOK).JSON(PostHogResponse{
		Success: true,
		Data:    toPostHogData(res),
	})
}

func toPostHogData(m *domain.Metrics) PostHogData {
	data := PostHogData{
		KPIs: KPIsDTO{
			ActiveUsers:        m.KPIs.ActiveUsers,
			TotalEvents:        m.KPIs.TotalEvents,
			Pageviews:          m.KPIs.Pageviews,
			AvgSessionDuration: m.KPIs.AvgSessionDuration,
		},
		Series:  make([]SeriesPointDTO, 0, len(m.Series)),
		Funnel:  make([]FunnelStepDTO, 0, len(m.Funnel)),
		Cohorts: make([]CohortDTO, 0, len(m.Cohorts)),
		Mock:    m.Mock,
	}
	for _, p := range m.Series {
		data.Series = append(data.Series, SeriesPointDTO{
			Ts:          p.Ts.Format(daterange.Layout),
			Events:      p.Events,
			ActiveUsers: p.ActiveUsers,
		})
	}
	for _, s := range m.Funnel {
		data.Funnel = append(data.Funnel, FunnelStepDTO{Name: s.Name, Count: s.Count, ConversionRate: s.ConversionRate})
	}
	for _, ch := range m.Cohorts {
		data.Cohorts = append(data.Cohorts, CohortDTO{Week: ch.Week, Users: ch.Users, RetentionRate: ch.RetentionRate})
	}
	return data
}
