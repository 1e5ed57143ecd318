package fiber

import (
	"context"
	"net/http"

	"dashboard-analytics-service/internal/chatbot/core/domain"
	"dashboard-analytics-service/internal/chatbot/core/usecase"
	"dashboard-analytics-service/internal/platform/daterange"

	"github.com/gofiber/fiber/v2"
)

const defaultWindowDays = 30

type GetChatbotSeriesUseCase interface {
	Execute(ctx context.Context, in usecase.GetChatbotSeriesInput) (*domain.Series, error)
}

type ChatbotHandler struct {
	uc GetChatbotSeriesUseCase
}

func NewChatbotHandler(uc GetChatbotSeriesUseCase) *ChatbotHandler {
	return &ChatbotHandler{uc: uc}
}

// GetChatbotMetrics godoc
// @Summary Chatbot conversation metrics
// @Description Legacy flat metrics plus the native totals/series shape
// @Tags Chatbot
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD), defaults to 30 days ago"
// @Param to query string false "End date (YYYY-MM-DD), defaults to today"
// @Param granularity query string false "day | week (default day)"
// @Success 200 {object} ChatbotMetricsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/chatbot-v2 [get]
func (h *ChatbotHandler) GetChatbotMetrics(c *fiber.Ctx) error {
	// Unlike /api/overview this legacy route defaults to a trailing
	// 30-day window when the range is omitted.
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

	g := daterange.GranularityDay
	if gs := c.Query("granularity", ""); gs != "" {
		parsed, err := daterange.ParseGranularity(gs)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "Invalid granularity",
				Details: err.Error(),
			})
		}
		g = parsed
	}

	res, err := h.uc.Execute(c.UserContext(), usecase.GetChatbotSeriesInput{Range: r, Granularity: g})
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "Failed to load chatbot metrics",
			Details: err.Error(),
		})
	}

	native := toSeriesData(res)
	return c.Status(http.StatusOK).JSON(ChatbotMetricsResponse{
		Success: true,
		Data: LegacyMetrics{
			TotalConversations: res.Totals.TotalConversations,
			PropertyInquiries:  res.Totals.PropertyInquiries,
			AssessmentRequests: res.Totals.AssessmentRequests,
			LeadConversion:     res.Totals.LeadConversion,
			CompletionRate:     res.Totals.CompletionRate,
			MessageDepthP50:    res.Totals.MessageDepthP50,
		},
		NewFormat: native,
	})
}

func toSeriesData(res *domain.Series) ChatbotSeriesData {
	points := make([]ChatbotSeriesPoint, 0, len(res.Series))
	for _, p := range res.Series {
		points = append(points, ChatbotSeriesPoint{
			Ts:                 p.Ts.Format(daterange.Layout),
			Conversations:      p.Conversations,
			PropertyInquiries:  p.PropertyInquiries,
			AssessmentRequests: p.AssessmentRequests,
			CompletionRate:     p.CompletionRate,
		})
	}
	return ChatbotSeriesData{
		Totals: ChatbotTotals{
			TotalConversations: res.Totals.TotalConversations,
			PropertyInquiries:  res.Totals.PropertyInquiries,
			AssessmentRequests: res.Totals.AssessmentRequests,
			LeadConversion:     res.Totals.LeadConversion,
			CompletionRate:     res.Totals.CompletionRate,
			MessageDepthP50:    res.Totals.MessageDepthP50,
		},
		Series:   points,
		Degraded: res.Degraded,
	}
}
