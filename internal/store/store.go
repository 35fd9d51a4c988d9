// Package store owns the in-memory budget state: the category and recurring
// template registries, the ledger store and the transaction log.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/rs/zerolog"
)

// Reader is a read-only view of the budget state
type Reader interface {
	Category(id string) (domain.Category, bool)
	Categories() []domain.Category
	Template(id string) (domain.RecurringTemplate, bool)
	Templates() []domain.RecurringTemplate
	Ledger(month domain.MonthKey) (domain.Ledger, bool)
	Ledgers() []domain.Ledger
	Transactions(month domain.MonthKey) []domain.Transaction
	TransactionCount() int
}

// Store guards the budget state. Readers run under a shared lock; writers run
// their whole transaction under the exclusive lock and either apply every
// staged change or none.
type Store struct {
	mu      sync.RWMutex
	state   *state
	flusher *flusher
	closed  bool
	logger  zerolog.Logger
}

// New creates a store seeded with initial. When repo is non-nil every
// committed transaction is flushed to it in the background.
func New(initial *domain.Snapshot, repo domain.SnapshotRepository, logger zerolog.Logger) *Store {
	if initial == nil {
		initial = domain.NewSnapshot()
	}
	s := &Store{
		state:  newState(initial),
		logger: logger.With().Str("component", "store").Logger(),
	}
	if repo != nil {
		s.flusher = newFlusher(repo, logger)
		go s.flusher.run()
	}
	return s
}

// Open loads the persisted snapshot from repo and returns a store backed by it
func Open(ctx context.Context, repo domain.SnapshotRepository, logger zerolog.Logger) (*Store, error) {
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	s := New(snap, repo, logger)
	s.logger.Info().
		Int("categories", len(snap.Categories)).
		Int("recurring_templates", len(snap.RecurringExpenses)).
		Int("ledgers", len(snap.MonthlyLedgers)).
		Int("transactions", len(snap.Transactions)).
		Msg("Loaded budget snapshot")
	return s, nil
}

// View runs fn against the committed state
func (s *Store) View(fn func(r Reader)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// WithTransaction runs fn with exclusive access. Changes staged on tx are
// applied only if fn returns nil; otherwise they are discarded and fn's error
// is returned. A successful commit schedules a flush of the new state.
func (s *Store) WithTransaction(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTx(s.state)
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty() {
		return nil
	}

	s.state = tx.apply()
	if s.flusher != nil && !s.closed {
		s.flusher.schedule(s.state.snapshot())
	}
	return nil
}

// Snapshot returns a deep copy of the committed state
func (s *Store) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}

// LastFlushError returns the error from the most recent persistence attempt,
// or nil if it succeeded or none has run
func (s *Store) LastFlushError() error {
	if s.flusher == nil {
		return nil
	}
	return s.flusher.lastError()
}

// Close stops accepting flushes and waits for the pending one to be written
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.flusher == nil {
		return nil
	}
	if err := s.flusher.close(ctx); err != nil {
		return err
	}
	return s.flusher.lastError()
}

// state is the committed budget. It is only modified by Tx.apply while the
// store's exclusive lock is held.
type state struct {
	categories   []domain.Category
	templates    []domain.RecurringTemplate
	ledgers      map[domain.MonthKey]domain.Ledger
	transactions []domain.Transaction

	categoryIdx map[string]int
	templateIdx map[string]int
	byMonth     map[domain.MonthKey][]int
}

func newState(snap *domain.Snapshot) *state {
	st := &state{
		categoryIdx: make(map[string]int),
		templateIdx: make(map[string]int),
		ledgers:     make(map[domain.MonthKey]domain.Ledger, len(snap.MonthlyLedgers)),
		byMonth:     make(map[domain.MonthKey][]int),
	}
	for _, c := range snap.Categories {
		if _, dup := st.categoryIdx[c.ID]; dup {
			continue
		}
		st.categoryIdx[c.ID] = len(st.categories)
		st.categories = append(st.categories, c)
	}
	for _, t := range snap.RecurringExpenses {
		if _, dup := st.templateIdx[t.ID]; dup {
			continue
		}
		st.templateIdx[t.ID] = len(st.templates)
		st.templates = append(st.templates, t)
	}
	for k, l := range snap.MonthlyLedgers {
		st.ledgers[k] = l
	}
	for _, t := range snap.Transactions {
		st.byMonth[t.MonthKey] = append(st.byMonth[t.MonthKey], len(st.transactions))
		st.transactions = append(st.transactions, t)
	}
	return st
}

func (st *state) snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		Categories:        append([]domain.Category{}, st.categories...),
		RecurringExpenses: append([]domain.RecurringTemplate{}, st.templates...),
		MonthlyLedgers:    make(map[domain.MonthKey]domain.Ledger, len(st.ledgers)),
		Transactions:      append([]domain.Transaction{}, st.transactions...),
	}
	for k, l := range st.ledgers {
		snap.MonthlyLedgers[k] = l
	}
	return snap
}

func (st *state) Category(id string) (domain.Category, bool) {
	i, ok := st.categoryIdx[id]
	if !ok {
		return domain.Category{}, false
	}
	return st.categories[i], true
}

func (st *state) Categories() []domain.Category {
	return append([]domain.Category{}, st.categories...)
}

func (st *state) Template(id string) (domain.RecurringTemplate, bool) {
	i, ok := st.templateIdx[id]
	if !ok {
		return domain.RecurringTemplate{}, false
	}
	return st.templates[i], true
}

func (st *state) Templates() []domain.RecurringTemplate {
	return append([]domain.RecurringTemplate{}, st.templates...)
}

func (st *state) Ledger(month domain.MonthKey) (domain.Ledger, bool) {
	l, ok := st.ledgers[month]
	return l, ok
}

func (st *state) Ledgers() []domain.Ledger {
	return sortedLedgers(st.ledgers)
}

func (st *state) Transactions(month domain.MonthKey) []domain.Transaction {
	idx := st.byMonth[month]
	out := make([]domain.Transaction, len(idx))
	for i, j := range idx {
		out[i] = st.transactions[j]
	}
	return out
}

func (st *state) TransactionCount() int {
	return len(st.transactions)
}

func sortedLedgers(m map[domain.MonthKey]domain.Ledger) []domain.Ledger {
	out := make([]domain.Ledger, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MonthKey.Before(out[j].MonthKey)
	})
	return out
}
