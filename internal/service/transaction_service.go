package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/dafibh/zerobudget/internal/util"
	"github.com/dafibh/zerobudget/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction log business logic
type TransactionService struct {
	eventSource
	store *store.Store
	ids   util.IDGenerator
	now   func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(st *store.Store, ids util.IDGenerator) *TransactionService {
	return &TransactionService{
		store: st,
		ids:   ids,
		now:   time.Now,
	}
}

// RecordTransaction appends a manual transaction to an open month.
// An empty description defaults to the category name.
func (s *TransactionService) RecordTransaction(input domain.RecordTransactionInput) (*domain.Transaction, error) {
	// Validate amount (must be positive)
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	if input.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", domain.ErrInvalidDate)
	}
	description := strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds maximum length", domain.ErrInvalidInput)
	}

	var txn domain.Transaction
	err := s.store.WithTransaction(func(tx *store.Tx) error {
		category, ok := tx.Category(input.CategoryID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCategory, input.CategoryID)
		}
		if _, ok := tx.Ledger(input.Month); !ok {
			return fmt.Errorf("%w: %s", domain.ErrMonthNotOpen, input.Month)
		}

		if description == "" {
			description = category.Name
		}
		id, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate transaction id: %w", err)
		}

		txn = domain.Transaction{
			ID:          id,
			MonthKey:    input.Month,
			CategoryID:  category.ID,
			Amount:      input.Amount,
			Description: description,
			Timestamp:   s.now().UTC(),
			IsAutomated: false,
		}
		tx.AppendTransactions(txn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("transaction_id", txn.ID).
		Str("month", txn.MonthKey.String()).
		Str("category_id", txn.CategoryID).
		Str("amount", txn.Amount.String()).
		Msg("Recorded transaction")

	s.publishEvent(websocket.TransactionCreated(txn.MonthKey, txn))
	return &txn, nil
}

// ListTransactions returns the transactions tagged to month in log order
func (s *TransactionService) ListTransactions(month domain.MonthKey) []domain.Transaction {
	var out []domain.Transaction
	s.store.View(func(r store.Reader) {
		out = r.Transactions(month)
	})
	return out
}
