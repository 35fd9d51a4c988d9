package handler

import (
	"net/http"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// RecordTransactionRequest represents the record transaction request body
type RecordTransactionRequest struct {
	CategoryID  string           `json:"categoryId"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"42.50"`
	Description string           `json:"description,omitempty"`
}

// RecordTransaction handles POST /api/v1/months/:month/transactions
// @Summary Record a transaction
// @Description Append a manual transaction to an open month. Description defaults to the category name.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Param request body RecordTransactionRequest true "Transaction"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /months/{month}/transactions [post]
func (h *TransactionHandler) RecordTransaction(c echo.Context) error {
	month, err := parseMonthParam(c)
	if err != nil {
		return handleServiceError(c, err, "month", "Failed to record transaction")
	}

	var req RecordTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Amount == nil {
		return NewValidationError(c, "Validation failed", fieldError("amount", "Amount is required"))
	}

	txn, err := h.transactionService.RecordTransaction(domain.RecordTransactionInput{
		Month:       month,
		CategoryID:  req.CategoryID,
		Amount:      *req.Amount,
		Description: req.Description,
	})
	if err != nil {
		field := "amount"
		if req.Amount.IsPositive() {
			field = "description"
		}
		return handleServiceError(c, err, field, "Failed to record transaction")
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(*txn))
}

// ListTransactions handles GET /api/v1/months/:month/transactions
// @Summary List a month's transactions
// @Description Transactions tagged to the month in the order they were recorded
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param month path string true "Month (YYYY-MM)"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Router /months/{month}/transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	month, err := parseMonthParam(c)
	if err != nil {
		return handleServiceError(c, err, "month", "Failed to list transactions")
	}

	return c.JSON(http.StatusOK, toTransactionResponses(h.transactionService.ListTransactions(month)))
}
