package handler

import (
	"net/http"

	"github.com/dafibh/zerobudget/internal/service"
	"github.com/labstack/echo/v4"
)

// SummaryHandler serves month summaries
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary handles GET /api/v1/months/:month/summary
// @Summary Get a month summary
// @Description Available, spent and remaining totals with per-category utilization
// @Tags months
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} MonthSummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /months/{month}/summary [get]
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	month, err := parseMonthParam(c)
	if err != nil {
		return handleServiceError(c, err, "month", "Failed to get summary")
	}

	return c.JSON(http.StatusOK, toMonthSummaryResponse(h.summaryService.GetSummary(month)))
}
