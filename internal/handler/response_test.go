package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/labstack/echo/v4"
)

func TestHandleServiceError_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		errType  string
		hasField bool
	}{
		{"invalid date", fmt.Errorf("%w: bad", domain.ErrInvalidDate), http.StatusBadRequest, ErrorTypeValidation, true},
		{"invalid input", domain.ErrInvalidAmount, http.StatusBadRequest, ErrorTypeValidation, true},
		{"unknown category", fmt.Errorf("%w: x", domain.ErrUnknownCategory), http.StatusNotFound, ErrorTypeNotFound, true},
		{"ledger not found", domain.ErrLedgerNotFound, http.StatusNotFound, ErrorTypeNotFound, false},
		{"template not found", domain.ErrTemplateNotFound, http.StatusNotFound, ErrorTypeNotFound, false},
		{"already open", domain.ErrMonthAlreadyOpen, http.StatusConflict, ErrorTypeConflict, false},
		{"not open", domain.ErrMonthNotOpen, http.StatusConflict, ErrorTypeConflict, false},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ErrorTypeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handleServiceError(c, tt.err, "amount", "Failed to test"); err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}
			expectStatus(t, rec, tt.status)

			problem := decode[ProblemDetails](t, rec)
			if problem.Type != tt.errType {
				t.Errorf("Expected type %s, got %s", tt.errType, problem.Type)
			}
			if problem.Instance != "/api/v1/test" {
				t.Errorf("Expected instance /api/v1/test, got %s", problem.Instance)
			}
			if got := len(problem.Errors) > 0; got != tt.hasField {
				t.Errorf("Expected field errors %v, got %+v", tt.hasField, problem.Errors)
			}
		})
	}
}

func TestHandleServiceError_InternalHidesCause(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_ = handleServiceError(c, errors.New("connection refused"), "", "Failed to load")

	if problem := decode[ProblemDetails](t, rec); problem.Detail != "Failed to load" {
		t.Errorf("Expected the action as detail, got %q", problem.Detail)
	}
}
