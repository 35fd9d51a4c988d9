package handler

import (
	"net/http"

	"github.com/dafibh/zerobudget/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RecurringTemplateHandler handles recurring template HTTP requests
type RecurringTemplateHandler struct {
	templateService *service.RecurringTemplateService
}

// NewRecurringTemplateHandler creates a new RecurringTemplateHandler
func NewRecurringTemplateHandler(templateService *service.RecurringTemplateService) *RecurringTemplateHandler {
	return &RecurringTemplateHandler{templateService: templateService}
}

// CreateRecurringTemplateRequest represents the create template request body
type CreateRecurringTemplateRequest struct {
	Name       string           `json:"name"`
	Amount     *decimal.Decimal `json:"amount" swaggertype:"string" example:"1200.00"`
	CategoryID string           `json:"categoryId"`
}

// CreateTemplate handles POST /api/v1/recurring-templates
// @Summary Create a recurring template
// @Description Register a fixed monthly obligation, replayed into every month opened afterwards
// @Tags recurring-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecurringTemplateRequest true "Template creation request"
// @Success 201 {object} RecurringTemplateResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /recurring-templates [post]
func (h *RecurringTemplateHandler) CreateTemplate(c echo.Context) error {
	var req CreateRecurringTemplateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Amount == nil {
		return NewValidationError(c, "Validation failed", fieldError("amount", "Amount is required"))
	}

	template, err := h.templateService.CreateTemplate(req.Name, *req.Amount, req.CategoryID)
	if err != nil {
		field := "name"
		if req.Amount.IsNegative() {
			field = "amount"
		}
		return handleServiceError(c, err, field, "Failed to create recurring template")
	}

	return c.JSON(http.StatusCreated, toRecurringTemplateResponse(*template))
}

// ListTemplates handles GET /api/v1/recurring-templates
// @Summary List recurring templates
// @Tags recurring-templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RecurringTemplateResponse
// @Router /recurring-templates [get]
func (h *RecurringTemplateHandler) ListTemplates(c echo.Context) error {
	templates := h.templateService.ListTemplates()

	response := make([]RecurringTemplateResponse, len(templates))
	for i, t := range templates {
		response[i] = toRecurringTemplateResponse(t)
	}

	return c.JSON(http.StatusOK, response)
}
