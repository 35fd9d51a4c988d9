package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable entry in the transaction log. MonthKey is a
// denormalized tag, not a live reference to a Ledger.
type Transaction struct {
	ID          string          `json:"id"`
	MonthKey    MonthKey        `json:"monthKey"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
	IsAutomated bool            `json:"isAutomated"`
}

// RecordTransactionInput is the input for recording a manual transaction
type RecordTransactionInput struct {
	Month       MonthKey
	CategoryID  string
	Amount      decimal.Decimal
	Description string
}
