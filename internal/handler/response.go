package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://zerobudget.app/errors/validation"
	ErrorTypeNotFound     = "https://zerobudget.app/errors/not-found"
	ErrorTypeUnauthorized = "https://zerobudget.app/errors/unauthorized"
	ErrorTypeConflict     = "https://zerobudget.app/errors/conflict"
	ErrorTypeInternal     = "https://zerobudget.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// fieldError builds a single-field validation error list
func fieldError(field, message string) []ValidationError {
	return []ValidationError{{Field: field, Message: message}}
}

// handleServiceError maps a domain error onto its HTTP problem response.
// Unrecognized errors are logged and reported as 500 with action as detail.
func handleServiceError(c echo.Context, err error, field, action string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return NewValidationError(c, err.Error(), fieldError("month", "Month must be in YYYY-MM format"))
	case errors.Is(err, domain.ErrInvalidInput):
		var details []ValidationError
		if field != "" {
			details = fieldError(field, err.Error())
		}
		return NewValidationError(c, err.Error(), details)
	case errors.Is(err, domain.ErrUnknownCategory):
		return c.JSON(http.StatusNotFound, ProblemDetails{
			Type:     ErrorTypeNotFound,
			Title:    "Not Found",
			Status:   http.StatusNotFound,
			Detail:   err.Error(),
			Instance: c.Request().URL.Path,
			Errors:   fieldError("categoryId", "Category does not exist"),
		})
	case errors.Is(err, domain.ErrLedgerNotFound), errors.Is(err, domain.ErrTemplateNotFound):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, domain.ErrMonthAlreadyOpen), errors.Is(err, domain.ErrMonthNotOpen):
		return NewConflictError(c, err.Error())
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(action)
	return NewInternalError(c, action)
}
