package handler

import (
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// formatMoney renders an amount with two fraction digits
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// parseMonthParam reads the :month path parameter
func parseMonthParam(c echo.Context) (domain.MonthKey, error) {
	return domain.ParseMonthKey(c.Param("month"))
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Limit string `json:"limit"`
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Limit: formatMoney(c.Limit)}
}

// RecurringTemplateResponse represents a recurring template in API responses
type RecurringTemplateResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	CategoryID string `json:"categoryId"`
}

func toRecurringTemplateResponse(t domain.RecurringTemplate) RecurringTemplateResponse {
	return RecurringTemplateResponse{
		ID:         t.ID,
		Name:       t.Name,
		Amount:     formatMoney(t.Amount),
		CategoryID: t.CategoryID,
	}
}

// LedgerResponse represents a month's ledger in API responses
type LedgerResponse struct {
	MonthKey  string `json:"monthKey"`
	Income    string `json:"income"`
	Rollover  string `json:"rollover"`
	Available string `json:"available"`
	Status    string `json:"status"`
}

func toLedgerResponse(l domain.Ledger) LedgerResponse {
	return LedgerResponse{
		MonthKey:  l.MonthKey.String(),
		Income:    formatMoney(l.Income),
		Rollover:  formatMoney(l.Rollover),
		Available: formatMoney(l.Available()),
		Status:    string(l.Status),
	}
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string `json:"id"`
	MonthKey    string `json:"monthKey"`
	CategoryID  string `json:"categoryId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	IsAutomated bool   `json:"isAutomated"`
}

func toTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		MonthKey:    t.MonthKey.String(),
		CategoryID:  t.CategoryID,
		Amount:      formatMoney(t.Amount),
		Description: t.Description,
		Timestamp:   t.Timestamp.UTC().Format(time.RFC3339Nano),
		IsAutomated: t.IsAutomated,
	}
}

func toTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = toTransactionResponse(t)
	}
	return out
}

// CategorySummaryResponse holds one category's figures in a month summary
type CategorySummaryResponse struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Spent       string `json:"spent"`
	Limit       string `json:"limit"`
	Utilization string `json:"utilization"`
}

// MonthSummaryResponse represents the month summary in API responses
type MonthSummaryResponse struct {
	MonthKey         string                             `json:"monthKey"`
	HasLedger        bool                               `json:"hasLedger"`
	Status           string                             `json:"status,omitempty"`
	TotalAvailable   string                             `json:"totalAvailable"`
	TotalSpent       string                             `json:"totalSpent"`
	RemainingBalance string                             `json:"remainingBalance"`
	PerCategory      map[string]CategorySummaryResponse `json:"perCategory"`
	CategoryOrder    []string                           `json:"categoryOrder"`
}

func toMonthSummaryResponse(s *domain.MonthSummary) MonthSummaryResponse {
	resp := MonthSummaryResponse{
		MonthKey:         s.MonthKey.String(),
		HasLedger:        s.HasLedger,
		Status:           string(s.Status),
		TotalAvailable:   formatMoney(s.TotalAvailable),
		TotalSpent:       formatMoney(s.TotalSpent),
		RemainingBalance: formatMoney(s.RemainingBalance),
		PerCategory:      make(map[string]CategorySummaryResponse, len(s.PerCategory)),
		CategoryOrder:    s.CategoryOrder,
	}
	for id, c := range s.PerCategory {
		resp.PerCategory[id] = CategorySummaryResponse{
			CategoryID:  c.CategoryID,
			Name:        c.Name,
			Spent:       formatMoney(c.Spent),
			Limit:       formatMoney(c.Limit),
			Utilization: formatMoney(c.Utilization),
		}
	}
	return resp
}
