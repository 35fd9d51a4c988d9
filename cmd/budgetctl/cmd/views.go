package cmd

import (
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type categoryView struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Limit string `json:"limit" yaml:"limit"`
}

func toCategoryView(c domain.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name, Limit: money(c.Limit)}
}

type templateView struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Amount     string `json:"amount" yaml:"amount"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
}

func toTemplateView(t domain.RecurringTemplate) templateView {
	return templateView{ID: t.ID, Name: t.Name, Amount: money(t.Amount), CategoryID: t.CategoryID}
}

type ledgerView struct {
	Month     string `json:"month" yaml:"month"`
	Income    string `json:"income" yaml:"income"`
	Rollover  string `json:"rollover" yaml:"rollover"`
	Available string `json:"available" yaml:"available"`
	Status    string `json:"status" yaml:"status"`
}

func toLedgerView(l domain.Ledger) ledgerView {
	return ledgerView{
		Month:     l.MonthKey.String(),
		Income:    money(l.Income),
		Rollover:  money(l.Rollover),
		Available: money(l.Available()),
		Status:    string(l.Status),
	}
}

type transactionView struct {
	ID          string `json:"id" yaml:"id"`
	Month       string `json:"month" yaml:"month"`
	CategoryID  string `json:"categoryId" yaml:"categoryId"`
	Amount      string `json:"amount" yaml:"amount"`
	Description string `json:"description" yaml:"description"`
	Timestamp   string `json:"timestamp" yaml:"timestamp"`
	Automated   bool   `json:"isAutomated" yaml:"isAutomated"`
}

func toTransactionView(t domain.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Month:       t.MonthKey.String(),
		CategoryID:  t.CategoryID,
		Amount:      money(t.Amount),
		Description: t.Description,
		Timestamp:   t.Timestamp.UTC().Format(time.RFC3339),
		Automated:   t.IsAutomated,
	}
}

func toTransactionViews(txns []domain.Transaction) []transactionView {
	out := make([]transactionView, len(txns))
	for i, t := range txns {
		out[i] = toTransactionView(t)
	}
	return out
}

type categorySummaryView struct {
	CategoryID  string `json:"categoryId" yaml:"categoryId"`
	Name        string `json:"name" yaml:"name"`
	Spent       string `json:"spent" yaml:"spent"`
	Limit       string `json:"limit" yaml:"limit"`
	Utilization string `json:"utilization" yaml:"utilization"`
}

type summaryView struct {
	Month            string                `json:"month" yaml:"month"`
	HasLedger        bool                  `json:"hasLedger" yaml:"hasLedger"`
	Status           string                `json:"status,omitempty" yaml:"status,omitempty"`
	TotalAvailable   string                `json:"totalAvailable" yaml:"totalAvailable"`
	TotalSpent       string                `json:"totalSpent" yaml:"totalSpent"`
	RemainingBalance string                `json:"remainingBalance" yaml:"remainingBalance"`
	Categories       []categorySummaryView `json:"categories" yaml:"categories"`
}

// toSummaryView flattens the per-category map into CategoryOrder order
func toSummaryView(s *domain.MonthSummary) summaryView {
	v := summaryView{
		Month:            s.MonthKey.String(),
		HasLedger:        s.HasLedger,
		Status:           string(s.Status),
		TotalAvailable:   money(s.TotalAvailable),
		TotalSpent:       money(s.TotalSpent),
		RemainingBalance: money(s.RemainingBalance),
		Categories:       make([]categorySummaryView, 0, len(s.CategoryOrder)),
	}
	for _, id := range s.CategoryOrder {
		c := s.PerCategory[id]
		v.Categories = append(v.Categories, categorySummaryView{
			CategoryID:  c.CategoryID,
			Name:        c.Name,
			Spent:       money(c.Spent),
			Limit:       money(c.Limit),
			Utilization: money(c.Utilization),
		})
	}
	return v
}
