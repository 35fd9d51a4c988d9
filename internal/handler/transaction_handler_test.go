package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestRecordTransaction_Success(t *testing.T) {
	api := newTestAPI(t, "")
	food := api.createCategory(t, "Food", "400")
	api.openMonth(t, "2024-03", "3000")

	rec := api.do(t, http.MethodPost, "/api/v1/months/2024-03/transactions",
		map[string]string{"categoryId": food, "amount": "42.5", "description": "Market run"})
	expectStatus(t, rec, http.StatusCreated)

	txn := decode[TransactionResponse](t, rec)
	if txn.Amount != "42.50" || txn.Description != "Market run" || txn.MonthKey != "2024-03" || txn.IsAutomated {
		t.Errorf("Unexpected transaction: %+v", txn)
	}
	if _, err := time.Parse(time.RFC3339Nano, txn.Timestamp); err != nil {
		t.Errorf("Expected RFC3339 timestamp, got %q", txn.Timestamp)
	}
}

func TestRecordTransaction_DescriptionDefaultsToCategory(t *testing.T) {
	api := newTestAPI(t, "")
	food := api.createCategory(t, "Food", "400")
	api.openMonth(t, "2024-03", "3000")

	txn := api.record(t, "2024-03", food, "10")
	if txn.Description != "Food" {
		t.Errorf("Expected description 'Food', got %q", txn.Description)
	}
}

func TestRecordTransaction_Errors(t *testing.T) {
	api := newTestAPI(t, "")
	food := api.createCategory(t, "Food", "400")
	api.openMonth(t, "2024-03", "3000")

	tests := []struct {
		name   string
		path   string
		body   map[string]string
		status int
		field  string
	}{
		{"month not open", "/api/v1/months/2024-04/transactions",
			map[string]string{"categoryId": food, "amount": "10"}, http.StatusConflict, ""},
		{"unknown category", "/api/v1/months/2024-03/transactions",
			map[string]string{"categoryId": "nope", "amount": "10"}, http.StatusNotFound, "categoryId"},
		{"missing amount", "/api/v1/months/2024-03/transactions",
			map[string]string{"categoryId": food}, http.StatusBadRequest, "amount"},
		{"zero amount", "/api/v1/months/2024-03/transactions",
			map[string]string{"categoryId": food, "amount": "0"}, http.StatusBadRequest, "amount"},
		{"negative amount", "/api/v1/months/2024-03/transactions",
			map[string]string{"categoryId": food, "amount": "-3"}, http.StatusBadRequest, "amount"},
		{"description too long", "/api/v1/months/2024-03/transactions",
			map[string]string{"categoryId": food, "amount": "3", "description": strings.Repeat("d", 256)}, http.StatusBadRequest, "description"},
		{"bad month", "/api/v1/months/24-03/transactions",
			map[string]string{"categoryId": food, "amount": "3"}, http.StatusBadRequest, "month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, tt.path, tt.body)
			expectStatus(t, rec, tt.status)

			if tt.field == "" {
				return
			}
			problem := decode[ProblemDetails](t, rec)
			if len(problem.Errors) != 1 || problem.Errors[0].Field != tt.field {
				t.Errorf("Expected a single error on %s, got %+v", tt.field, problem.Errors)
			}
		})
	}

	rec := api.do(t, http.MethodGet, "/api/v1/months/2024-03/transactions", nil)
	expectStatus(t, rec, http.StatusOK)
	if list := decode[[]TransactionResponse](t, rec); len(list) != 0 {
		t.Errorf("Expected rejected transactions to leave the log empty, got %d", len(list))
	}
}

func TestListTransactions_MonthScoped(t *testing.T) {
	api := newTestAPI(t, "")
	food := api.createCategory(t, "Food", "400")
	api.openMonth(t, "2024-03", "3000")
	api.openMonth(t, "2024-04", "3000")

	first := api.record(t, "2024-03", food, "1")
	api.record(t, "2024-04", food, "2")
	second := api.record(t, "2024-03", food, "3")

	rec := api.do(t, http.MethodGet, "/api/v1/months/2024-03/transactions", nil)
	expectStatus(t, rec, http.StatusOK)

	list := decode[[]TransactionResponse](t, rec)
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("Expected March transactions in recording order, got %+v", list)
	}
}
