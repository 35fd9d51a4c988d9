package store

import (
	"fmt"

	"github.com/dafibh/zerobudget/internal/domain"
)

// Tx stages writes against the committed state. Reads through a Tx see the
// committed state with the staged changes layered on top.
type Tx struct {
	base         *state
	reset        bool
	categories   []domain.Category
	templates    []domain.RecurringTemplate
	ledgers      map[domain.MonthKey]domain.Ledger
	transactions []domain.Transaction
}

var _ Reader = (*Tx)(nil)

func newTx(base *state) *Tx {
	return &Tx{
		base:    base,
		ledgers: make(map[domain.MonthKey]domain.Ledger),
	}
}

// AddCategory stages a new category. Category ids must be unique.
func (tx *Tx) AddCategory(c domain.Category) error {
	if c.ID == "" {
		return fmt.Errorf("%w: category id is required", domain.ErrInvalidInput)
	}
	if _, exists := tx.Category(c.ID); exists {
		return fmt.Errorf("%w: category %s already exists", domain.ErrInvalidInput, c.ID)
	}
	tx.categories = append(tx.categories, c)
	return nil
}

// AddTemplate stages a new recurring template. Template ids must be unique.
func (tx *Tx) AddTemplate(t domain.RecurringTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("%w: template id is required", domain.ErrInvalidInput)
	}
	if _, exists := tx.Template(t.ID); exists {
		return fmt.Errorf("%w: template %s already exists", domain.ErrInvalidInput, t.ID)
	}
	tx.templates = append(tx.templates, t)
	return nil
}

// OpenLedger stages the ledger for a month. At most one ledger may exist per month.
func (tx *Tx) OpenLedger(l domain.Ledger) error {
	if _, exists := tx.Ledger(l.MonthKey); exists {
		return fmt.Errorf("%w: %s", domain.ErrMonthAlreadyOpen, l.MonthKey)
	}
	tx.ledgers[l.MonthKey] = l
	return nil
}

// AppendTransactions stages entries for the transaction log, in order
func (tx *Tx) AppendTransactions(txns ...domain.Transaction) {
	tx.transactions = append(tx.transactions, txns...)
}

// Reset discards the committed state and everything staged so far
func (tx *Tx) Reset() {
	tx.reset = true
	tx.categories = nil
	tx.templates = nil
	tx.ledgers = make(map[domain.MonthKey]domain.Ledger)
	tx.transactions = nil
}

func (tx *Tx) dirty() bool {
	return tx.reset || len(tx.categories) > 0 || len(tx.templates) > 0 ||
		len(tx.ledgers) > 0 || len(tx.transactions) > 0
}

// apply writes the staged changes into the committed state and returns it.
// It must only be called with the store's exclusive lock held.
func (tx *Tx) apply() *state {
	st := tx.base
	if tx.reset {
		st = newState(domain.NewSnapshot())
	}
	for _, c := range tx.categories {
		st.categoryIdx[c.ID] = len(st.categories)
		st.categories = append(st.categories, c)
	}
	for _, t := range tx.templates {
		st.templateIdx[t.ID] = len(st.templates)
		st.templates = append(st.templates, t)
	}
	for k, l := range tx.ledgers {
		st.ledgers[k] = l
	}
	for _, t := range tx.transactions {
		st.byMonth[t.MonthKey] = append(st.byMonth[t.MonthKey], len(st.transactions))
		st.transactions = append(st.transactions, t)
	}
	return st
}

func (tx *Tx) committed() *state {
	if tx.reset {
		return nil
	}
	return tx.base
}

// Category implements Reader
func (tx *Tx) Category(id string) (domain.Category, bool) {
	for _, c := range tx.categories {
		if c.ID == id {
			return c, true
		}
	}
	if base := tx.committed(); base != nil {
		return base.Category(id)
	}
	return domain.Category{}, false
}

// Categories implements Reader
func (tx *Tx) Categories() []domain.Category {
	var out []domain.Category
	if base := tx.committed(); base != nil {
		out = base.Categories()
	}
	return append(out, tx.categories...)
}

// Template implements Reader
func (tx *Tx) Template(id string) (domain.RecurringTemplate, bool) {
	for _, t := range tx.templates {
		if t.ID == id {
			return t, true
		}
	}
	if base := tx.committed(); base != nil {
		return base.Template(id)
	}
	return domain.RecurringTemplate{}, false
}

// Templates implements Reader
func (tx *Tx) Templates() []domain.RecurringTemplate {
	var out []domain.RecurringTemplate
	if base := tx.committed(); base != nil {
		out = base.Templates()
	}
	return append(out, tx.templates...)
}

// Ledger implements Reader
func (tx *Tx) Ledger(month domain.MonthKey) (domain.Ledger, bool) {
	if l, ok := tx.ledgers[month]; ok {
		return l, true
	}
	if base := tx.committed(); base != nil {
		return base.Ledger(month)
	}
	return domain.Ledger{}, false
}

// Ledgers implements Reader
func (tx *Tx) Ledgers() []domain.Ledger {
	merged := make(map[domain.MonthKey]domain.Ledger, len(tx.ledgers))
	if base := tx.committed(); base != nil {
		for k, l := range base.ledgers {
			merged[k] = l
		}
	}
	for k, l := range tx.ledgers {
		merged[k] = l
	}
	return sortedLedgers(merged)
}

// Transactions implements Reader
func (tx *Tx) Transactions(month domain.MonthKey) []domain.Transaction {
	var out []domain.Transaction
	if base := tx.committed(); base != nil {
		out = base.Transactions(month)
	}
	for _, t := range tx.transactions {
		if t.MonthKey == month {
			out = append(out, t)
		}
	}
	return out
}

// TransactionCount implements Reader
func (tx *Tx) TransactionCount() int {
	n := len(tx.transactions)
	if base := tx.committed(); base != nil {
		n += base.TransactionCount()
	}
	return n
}
