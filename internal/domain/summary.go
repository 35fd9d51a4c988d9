package domain

import "github.com/shopspring/decimal"

// CategorySummary holds one category's figures for a month
type CategorySummary struct {
	CategoryID  string          `json:"categoryId"`
	Name        string          `json:"name"`
	Spent       decimal.Decimal `json:"spent"`
	Limit       decimal.Decimal `json:"limit"`
	Utilization decimal.Decimal `json:"utilization"`
}

// MonthSummary contains the aggregated figures for a month
type MonthSummary struct {
	MonthKey         MonthKey                   `json:"monthKey"`
	HasLedger        bool                       `json:"hasLedger"`
	Status           LedgerStatus               `json:"status,omitempty"`
	TotalAvailable   decimal.Decimal            `json:"totalAvailable"`
	TotalSpent       decimal.Decimal            `json:"totalSpent"`
	RemainingBalance decimal.Decimal            `json:"remainingBalance"`
	PerCategory      map[string]CategorySummary `json:"perCategory"`
	// CategoryOrder lists PerCategory keys in registry order, followed by any
	// category ids referenced only by transactions.
	CategoryOrder []string `json:"categoryOrder"`
}
