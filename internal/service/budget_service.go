package service

import (
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/dafibh/zerobudget/internal/websocket"
	"github.com/rs/zerolog/log"
)

// BudgetService handles operations over the whole budget
type BudgetService struct {
	eventSource
	store *store.Store
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(st *store.Store) *BudgetService {
	return &BudgetService{store: st}
}

// ResetAll clears categories, templates, ledgers and transactions
func (s *BudgetService) ResetAll() error {
	if err := s.store.WithTransaction(func(tx *store.Tx) error {
		tx.Reset()
		return nil
	}); err != nil {
		return err
	}

	log.Warn().Msg("Budget reset: all categories, templates, ledgers and transactions cleared")
	s.publishEvent(websocket.BudgetReset())
	return nil
}
