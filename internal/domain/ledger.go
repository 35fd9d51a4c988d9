package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LedgerStatus is the lifecycle state of a month's ledger
type LedgerStatus string

const (
	LedgerStatusOpen LedgerStatus = "OPEN"

	// LedgerStatusClosed is not reachable yet; nothing transitions a ledger out of OPEN.
	LedgerStatusClosed LedgerStatus = "CLOSED"
)

// ParseLedgerStatus maps a stored status string to a LedgerStatus.
// Unknown or empty values are treated as OPEN.
func ParseLedgerStatus(s string) LedgerStatus {
	switch LedgerStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case LedgerStatusClosed:
		return LedgerStatusClosed
	default:
		return LedgerStatusOpen
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *LedgerStatus) UnmarshalText(text []byte) error {
	*s = ParseLedgerStatus(string(text))
	return nil
}

// Ledger is the committed income and rollover record that opens a month
type Ledger struct {
	MonthKey MonthKey        `json:"monthKey"`
	Income   decimal.Decimal `json:"income"`
	Rollover decimal.Decimal `json:"rollover"`
	Status   LedgerStatus    `json:"status"`
}

// Available returns income plus rollover
func (l Ledger) Available() decimal.Decimal {
	return l.Income.Add(l.Rollover)
}
