package handler

import (
	"net/http"

	"github.com/dafibh/zerobudget/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// MonthHandler handles ledger HTTP requests
type MonthHandler struct {
	monthService *service.MonthService
}

// NewMonthHandler creates a new MonthHandler
func NewMonthHandler(monthService *service.MonthService) *MonthHandler {
	return &MonthHandler{monthService: monthService}
}

// CurrentMonthResponse describes the current calendar month
type CurrentMonthResponse struct {
	MonthKey        string          `json:"monthKey"`
	HasLedger       bool            `json:"hasLedger"`
	Ledger          *LedgerResponse `json:"ledger,omitempty"`
	PreviewRollover string          `json:"previewRollover"`
}

// RolloverResponse holds the rollover preview for a month
type RolloverResponse struct {
	MonthKey      string `json:"monthKey"`
	PreviousMonth string `json:"previousMonth"`
	Rollover      string `json:"rollover"`
	AlreadyOpen   bool   `json:"alreadyOpen"`
}

// OpenMonthRequest represents the open month request body.
// Rollover defaults to the previewed rollover when omitted.
type OpenMonthRequest struct {
	Income   *decimal.Decimal `json:"income" swaggertype:"string" example:"3000.00"`
	Rollover *decimal.Decimal `json:"rollover,omitempty" swaggertype:"string" example:"0.00"`
}

// OpenMonthResponse is returned when a month is opened
type OpenMonthResponse struct {
	Ledger       LedgerResponse        `json:"ledger"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ListLedgers handles GET /api/v1/months
// @Summary List opened months
// @Description Ledgers ordered by month ascending
// @Tags months
// @Produce json
// @Security BearerAuth
// @Success 200 {array} LedgerResponse
// @Router /months [get]
func (h *MonthHandler) ListLedgers(c echo.Context) error {
	ledgers := h.monthService.ListLedgers()

	response := make([]LedgerResponse, len(ledgers))
	for i, l := range ledgers {
		response[i] = toLedgerResponse(l)
	}

	return c.JSON(http.StatusOK, response)
}

// GetCurrent handles GET /api/v1/months/current
// @Summary Get the current month
// @Description Current calendar month (UTC), whether it has been opened, and its rollover preview
// @Tags months
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CurrentMonthResponse
// @Router /months/current [get]
func (h *MonthHandler) GetCurrent(c echo.Context) error {
	month := h.monthService.CurrentMonth()

	response := CurrentMonthResponse{
		MonthKey:        month.String(),
		PreviewRollover: formatMoney(h.monthService.PreviewRollover(month)),
	}
	if ledger, err := h.monthService.GetLedger(month); err == nil {
		lr := toLedgerResponse(*ledger)
		response.HasLedger = true
		response.Ledger = &lr
	}

	return c.JSON(http.StatusOK, response)
}

// GetLedger handles GET /api/v1/months/:month
// @Summary Get a month's ledger
// @Tags months
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} LedgerResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /months/{month} [get]
func (h *MonthHandler) GetLedger(c echo.Context) error {
	month, err := parseMonthParam(c)
	if err != nil {
		return handleServiceError(c, err, "month", "Failed to get ledger")
	}

	ledger, err := h.monthService.GetLedger(month)
	if err != nil {
		return handleServiceError(c, err, "", "Failed to get ledger")
	}

	return c.JSON(http.StatusOK, toLedgerResponse(*ledger))
}

// PreviewRollover handles GET /api/v1/months/:month/rollover
// @Summary Preview a month's rollover
// @Description Surplus the month would inherit from the month before it if opened now
// @Tags months
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {object} RolloverResponse
// @Failure 400 {object} ProblemDetails
// @Router /months/{month}/rollover [get]
func (h *MonthHandler) PreviewRollover(c echo.Context) error {
	month, err := parseMonthParam(c)
	if err != nil {
		return handleServiceError(c, err, "month", "Failed to preview rollover")
	}

	return c.JSON(http.StatusOK, RolloverResponse{
		MonthKey:      month.String(),
		PreviousMonth: month.Previous().String(),
		Rollover:      formatMoney(h.monthService.PreviewRollover(month)),
		AlreadyOpen:   h.monthService.HasLedger(month),
	})
}

// OpenMonth handles POST /api/v1/months/:month/open
// @Summary Open a month
// @Description Create the month's ledger and materialize every recurring template into it
// @Tags months
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Param request body OpenMonthRequest true "Income and optional rollover"
// @Success 201 {object} OpenMonthResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /months/{month}/open [post]
func (h *MonthHandler) OpenMonth(c echo.Context) error {
	month, err := parseMonthParam(c)
	if err != nil {
		return handleServiceError(c, err, "month", "Failed to open month")
	}

	var req OpenMonthRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Income == nil {
		return NewValidationError(c, "Validation failed", fieldError("income", "Income is required"))
	}

	rollover := h.monthService.PreviewRollover(month)
	if req.Rollover != nil {
		rollover = *req.Rollover
	}

	opened, err := h.monthService.OpenMonth(month, *req.Income, rollover)
	if err != nil {
		field := "income"
		if rollover.IsNegative() {
			field = "rollover"
		}
		return handleServiceError(c, err, field, "Failed to open month")
	}

	return c.JSON(http.StatusCreated, OpenMonthResponse{
		Ledger:       toLedgerResponse(opened.Ledger),
		Transactions: toTransactionResponses(opened.Transactions),
	})
}
