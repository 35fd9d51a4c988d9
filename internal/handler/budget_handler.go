package handler

import (
	"net/http"

	"github.com/dafibh/zerobudget/internal/service"
	"github.com/labstack/echo/v4"
)

// BudgetHandler handles whole-budget operations
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// ResetRequest must confirm the reset explicitly
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// Reset handles POST /api/v1/reset
// @Summary Reset the budget
// @Description Irreversibly delete every category, template, ledger and transaction
// @Tags budget
// @Accept json
// @Security BearerAuth
// @Param request body ResetRequest true "Confirmation"
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Router /reset [post]
func (h *BudgetHandler) Reset(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if !req.Confirm {
		return NewValidationError(c, "Reset must be confirmed", fieldError("confirm", "Set confirm to true"))
	}

	if err := h.budgetService.ResetAll(); err != nil {
		return handleServiceError(c, err, "", "Failed to reset budget")
	}

	return c.NoContent(http.StatusNoContent)
}
