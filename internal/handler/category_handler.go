package handler

import (
	"net/http"

	"github.com/dafibh/zerobudget/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name  string           `json:"name"`
	Limit *decimal.Decimal `json:"limit" swaggertype:"string" example:"400.00"`
}

// CreateCategory handles POST /api/v1/categories
// @Summary Create a category
// @Description Register a spending category with a monthly limit
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category creation request"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Limit == nil {
		return NewValidationError(c, "Validation failed", fieldError("limit", "Limit is required"))
	}

	category, err := h.categoryService.CreateCategory(req.Name, *req.Limit)
	if err != nil {
		field := "name"
		if req.Limit.IsNegative() {
			field = "limit"
		}
		return handleServiceError(c, err, field, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, toCategoryResponse(*category))
}

// ListCategories handles GET /api/v1/categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories := h.categoryService.ListCategories()

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}

	return c.JSON(http.StatusOK, response)
}
