package service

import (
	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/shopspring/decimal"
)

// SummaryService builds the read-only month summary
type SummaryService struct {
	store *store.Store
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(st *store.Store) *SummaryService {
	return &SummaryService{store: st}
}

// GetSummary aggregates month. Every registered category gets an entry, as
// does any category id that only appears on that month's transactions.
// A month without a ledger reports zero available.
func (s *SummaryService) GetSummary(month domain.MonthKey) *domain.MonthSummary {
	var summary *domain.MonthSummary
	s.store.View(func(r store.Reader) {
		summary = buildSummary(r, month)
	})
	return summary
}

func buildSummary(r store.Reader, month domain.MonthKey) *domain.MonthSummary {
	summary := &domain.MonthSummary{
		MonthKey:       month,
		TotalAvailable: TotalAvailable(r, month),
		TotalSpent:     decimal.Zero,
		PerCategory:    make(map[string]domain.CategorySummary),
		CategoryOrder:  []string{},
	}
	if ledger, ok := r.Ledger(month); ok {
		summary.HasLedger = true
		summary.Status = ledger.Status
	}

	// Single pass over the month's transactions
	spent := make(map[string]decimal.Decimal)
	var orphans []string
	for _, t := range r.Transactions(month) {
		summary.TotalSpent = summary.TotalSpent.Add(t.Amount)
		prev, seen := spent[t.CategoryID]
		if !seen {
			if _, known := r.Category(t.CategoryID); !known {
				orphans = append(orphans, t.CategoryID)
			}
		}
		spent[t.CategoryID] = prev.Add(t.Amount)
	}
	summary.RemainingBalance = summary.TotalAvailable.Sub(summary.TotalSpent)

	for _, c := range r.Categories() {
		catSpent := spent[c.ID]
		summary.PerCategory[c.ID] = domain.CategorySummary{
			CategoryID:  c.ID,
			Name:        c.Name,
			Spent:       catSpent,
			Limit:       c.Limit,
			Utilization: utilization(catSpent, c.Limit),
		}
		summary.CategoryOrder = append(summary.CategoryOrder, c.ID)
	}
	for _, id := range orphans {
		summary.PerCategory[id] = domain.CategorySummary{
			CategoryID:  id,
			Spent:       spent[id],
			Limit:       decimal.Zero,
			Utilization: utilization(spent[id], decimal.Zero),
		}
		summary.CategoryOrder = append(summary.CategoryOrder, id)
	}
	return summary
}
