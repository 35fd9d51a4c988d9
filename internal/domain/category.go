package domain

import "github.com/shopspring/decimal"

// Category is a spending bucket with a monthly limit
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Limit decimal.Decimal `json:"limit"`
}
