package service

import (
	"fmt"
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/dafibh/zerobudget/internal/util"
	"github.com/dafibh/zerobudget/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// MonthService handles ledger lifecycle: previewing rollover and opening months
type MonthService struct {
	eventSource
	store *store.Store
	ids   util.IDGenerator
	now   func() time.Time
}

// NewMonthService creates a new MonthService. ids generates the ids of
// transactions materialized from recurring templates.
func NewMonthService(st *store.Store, ids util.IDGenerator) *MonthService {
	return &MonthService{
		store: st,
		ids:   ids,
		now:   time.Now,
	}
}

// OpenedMonth is the result of opening a month
type OpenedMonth struct {
	Ledger       domain.Ledger        `json:"ledger"`
	Transactions []domain.Transaction `json:"transactions"`
}

// GetLedger returns the ledger for month
func (s *MonthService) GetLedger(month domain.MonthKey) (*domain.Ledger, error) {
	var (
		ledger domain.Ledger
		ok     bool
	)
	s.store.View(func(r store.Reader) {
		ledger, ok = r.Ledger(month)
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, month)
	}
	return &ledger, nil
}

// HasLedger reports whether month has been opened
func (s *MonthService) HasLedger(month domain.MonthKey) bool {
	var ok bool
	s.store.View(func(r store.Reader) {
		_, ok = r.Ledger(month)
	})
	return ok
}

// ListLedgers returns every ledger ordered by month
func (s *MonthService) ListLedgers() []domain.Ledger {
	var out []domain.Ledger
	s.store.View(func(r store.Reader) {
		out = r.Ledgers()
	})
	return out
}

// PreviewRollover returns the rollover month would receive if opened now
func (s *MonthService) PreviewRollover(month domain.MonthKey) decimal.Decimal {
	var rollover decimal.Decimal
	s.store.View(func(r store.Reader) {
		rollover = CalculateRollover(r, month)
	})
	return rollover
}

// CurrentMonth returns the month containing the service clock's current instant (UTC)
func (s *MonthService) CurrentMonth() domain.MonthKey {
	return util.CurrentMonth(s.now())
}

// OpenMonth creates the ledger for month and replays every registered
// recurring template into it. The ledger and its automated transactions are
// committed together: if anything fails, neither is stored.
func (s *MonthService) OpenMonth(month domain.MonthKey, income, rollover decimal.Decimal) (*OpenedMonth, error) {
	if month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", domain.ErrInvalidDate)
	}
	if income.IsNegative() {
		return nil, fmt.Errorf("%w: income must not be negative", domain.ErrInvalidInput)
	}
	if rollover.IsNegative() {
		return nil, fmt.Errorf("%w: rollover must not be negative", domain.ErrInvalidInput)
	}

	var result OpenedMonth
	err := s.store.WithTransaction(func(tx *store.Tx) error {
		ledger := domain.Ledger{
			MonthKey: month,
			Income:   income,
			Rollover: rollover,
			Status:   domain.LedgerStatusOpen,
		}
		if err := tx.OpenLedger(ledger); err != nil {
			return err
		}

		templates := tx.Templates()
		now := s.now().UTC()
		txns := make([]domain.Transaction, 0, len(templates))
		for _, tmpl := range templates {
			id, err := s.ids.NewID()
			if err != nil {
				return fmt.Errorf("generate transaction id: %w", err)
			}
			txns = append(txns, domain.Transaction{
				ID:          id,
				MonthKey:    month,
				CategoryID:  tmpl.CategoryID,
				Amount:      tmpl.Amount,
				Description: tmpl.RecurringDescription(),
				Timestamp:   now,
				IsAutomated: true,
			})
		}
		tx.AppendTransactions(txns...)

		result = OpenedMonth{Ledger: ledger, Transactions: txns}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("month", month.String()).
		Str("income", income.String()).
		Str("rollover", rollover.String()).
		Int("transaction_count", len(result.Transactions)).
		Msg("Opened month")

	s.publishEvent(websocket.LedgerOpened(month, result))
	return &result, nil
}
