package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dashboard-analytics-service/internal/overview/core/domain"
	"dashboard-analytics-service/internal/overview/core/usecase"
	"dashboard-analytics-service/internal/platform/daterange"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GetOverviewUseCase interface {
	Execute(ctx context.Context, in usecase.GetOverviewInput) (*domain.Overview, error)
}

type OverviewHandler struct {
	uc GetOverviewUseCase
}

func NewOverviewHandler(uc GetOverviewUseCase) *OverviewHandler {
	return &OverviewHandler{uc: uc}
}

// GetOverview godoc
// @Summary Unified dashboard overview
// @Description KPIs with period-over-period trends, per-source series, and top-pages/top-sources breakdowns
// @Tags Overview
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param granularity query string true "day | week"
// @Success 200 {object} OverviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/overview [get]
func (h *OverviewHandler) GetOverview(c *fiber.Ctx) error {
	fromStr := c.Query("from", "")
	toStr := c.Query("to", "")
	granStr := c.Query("granularity", "")

	// This boundary never defaults: all three params are mandatory.
	if fromStr == "" || toStr == "" || granStr == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Missing required parameters",
			Details: "from, to and granularity are required",
		})
	}

	r, err := daterange.ParseRange(fromStr, toStr)
	if err != nil {
		if errors.Is(err, daterange.ErrInvalidRange) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "Invalid date range",
				Details: "from must not be after to",
			})
		}
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid date format",
			Details: "dates must be YYYY-MM-DD",
		})
	}

	g, err := daterange.ParseGranularity(granStr)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid granularity",
			Details: "granularity must be day or week",
		})
	}

	res, err := h.uc.Execute(c.UserContext(), usecase.GetOverviewInput{Range: r, Granularity: g})
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:     "Failed to load overview",
			Details:   err.Error(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.Status(http.StatusOK).JSON(OverviewResponse{
		Success: true,
		Data:    toOverviewData(res),
		Meta: Meta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			RequestID:   uuid.NewString(),
		},
	})
}
