package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Snapshot is the durable document holding the whole budget state
type Snapshot struct {
	Categories        []Category          `json:"categories"`
	RecurringExpenses []RecurringTemplate `json:"recurringExpenses"`
	MonthlyLedgers    map[MonthKey]Ledger `json:"monthlyLedgers"`
	Transactions      []Transaction       `json:"transactions"`
}

// NewSnapshot returns an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Categories:        []Category{},
		RecurringExpenses: []RecurringTemplate{},
		MonthlyLedgers:    map[MonthKey]Ledger{},
		Transactions:      []Transaction{},
	}
}

// Clone returns a deep copy of s
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Categories:        append([]Category{}, s.Categories...),
		RecurringExpenses: append([]RecurringTemplate{}, s.RecurringExpenses...),
		MonthlyLedgers:    make(map[MonthKey]Ledger, len(s.MonthlyLedgers)),
		Transactions:      append([]Transaction{}, s.Transactions...),
	}
	for k, v := range s.MonthlyLedgers {
		c.MonthlyLedgers[k] = v
	}
	return c
}

// SnapshotRepository loads and saves the budget document
type SnapshotRepository interface {
	// Load returns the stored snapshot, or an empty one when nothing has been saved yet
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
}

// EncodeSnapshot serializes s as indented JSON
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeSnapshot parses a stored document. Each top-level field is decoded on
// its own: a missing or malformed field becomes empty and malformed entries are
// skipped, so the returned snapshot is always usable. The returned error lists
// everything that was discarded and is nil for a clean document.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	snap := NewSnapshot()
	if len(bytes.TrimSpace(data)) == 0 {
		return snap, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return snap, fmt.Errorf("decode snapshot document: %w", err)
	}

	var problems []error
	snap.Categories = decodeList(fields, "categories", &problems, func(c Category) bool {
		return c.ID != "" && !c.Limit.IsNegative()
	})
	snap.RecurringExpenses = decodeList(fields, "recurringExpenses", &problems, func(t RecurringTemplate) bool {
		return t.ID != "" && !t.Amount.IsNegative()
	})
	snap.Transactions = decodeList(fields, "transactions", &problems, func(t Transaction) bool {
		return t.ID != "" && !t.MonthKey.IsZero() && !t.Amount.IsNegative()
	})
	snap.MonthlyLedgers = decodeLedgers(fields["monthlyLedgers"], &problems)

	return snap, errors.Join(problems...)
}

func decodeList[T any](fields map[string]json.RawMessage, name string, problems *[]error, valid func(T) bool) []T {
	out := []T{}
	raw, ok := fields[name]
	if !ok || isNull(raw) {
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		*problems = append(*problems, fmt.Errorf("%s: %w", name, err))
		return out
	}

	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			*problems = append(*problems, fmt.Errorf("%s[%d]: %w", name, i, err))
			continue
		}
		if !valid(v) {
			*problems = append(*problems, fmt.Errorf("%s[%d]: invalid entry", name, i))
			continue
		}
		out = append(out, v)
	}
	return out
}

func decodeLedgers(raw json.RawMessage, problems *[]error) map[MonthKey]Ledger {
	out := map[MonthKey]Ledger{}
	if len(raw) == 0 || isNull(raw) {
		return out
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		*problems = append(*problems, fmt.Errorf("monthlyLedgers: %w", err))
		return out
	}

	for key, entry := range entries {
		month, err := ParseMonthKey(key)
		if err != nil {
			*problems = append(*problems, fmt.Errorf("monthlyLedgers[%s]: %w", key, err))
			continue
		}
		var ledger Ledger
		if err := json.Unmarshal(entry, &ledger); err != nil {
			*problems = append(*problems, fmt.Errorf("monthlyLedgers[%s]: %w", key, err))
			continue
		}
		if ledger.Income.IsNegative() || ledger.Rollover.IsNegative() {
			*problems = append(*problems, fmt.Errorf("monthlyLedgers[%s]: invalid entry", key))
			continue
		}
		// The map key is authoritative for which month a ledger belongs to.
		ledger.MonthKey = month
		ledger.Status = ParseLedgerStatus(string(ledger.Status))
		out[month] = ledger
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
