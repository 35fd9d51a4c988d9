package domain

import "github.com/shopspring/decimal"

// RecurringDescriptionSuffix marks transactions materialized from a template
const RecurringDescriptionSuffix = " (Recurring)"

// RecurringTemplate is a fixed monthly obligation replayed into every newly opened month
type RecurringTemplate struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID string          `json:"categoryId"`
}

// RecurringDescription returns the description given to transactions
// materialized from this template
func (t RecurringTemplate) RecurringDescription() string {
	return t.Name + RecurringDescriptionSuffix
}
