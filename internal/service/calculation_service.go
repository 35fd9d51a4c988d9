package service

import (
	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateRollover returns the surplus carried into target from the month
// immediately before it: income plus rollover minus everything spent, floored
// at zero. A month without a ledger contributes nothing; earlier months are
// never consulted.
func CalculateRollover(r store.Reader, target domain.MonthKey) decimal.Decimal {
	prev := target.Previous()
	ledger, ok := r.Ledger(prev)
	if !ok {
		return decimal.Zero
	}

	left := ledger.Available().Sub(TotalSpent(r, prev))
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// SpentByCategory sums the transactions tagged to month in one category
func SpentByCategory(r store.Reader, month domain.MonthKey, categoryID string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Transactions(month) {
		if t.CategoryID == categoryID {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// TotalSpent sums every transaction tagged to month
func TotalSpent(r store.Reader, month domain.MonthKey) decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Transactions(month) {
		total = total.Add(t.Amount)
	}
	return total
}

// TotalAvailable returns income plus rollover for month, or zero without a ledger
func TotalAvailable(r store.Reader, month domain.MonthKey) decimal.Decimal {
	ledger, ok := r.Ledger(month)
	if !ok {
		return decimal.Zero
	}
	return ledger.Available()
}

// RemainingBalance is TotalAvailable minus TotalSpent. It goes negative on overspend.
func RemainingBalance(r store.Reader, month domain.MonthKey) decimal.Decimal {
	return TotalAvailable(r, month).Sub(TotalSpent(r, month))
}

// CategoryUtilization returns how much of category's limit month has used, in percent
func CategoryUtilization(r store.Reader, month domain.MonthKey, category domain.Category) decimal.Decimal {
	return utilization(SpentByCategory(r, month, category.ID), category.Limit)
}

// utilization is min(100, 100*spent/limit). A zero limit counts as fully used.
func utilization(spent, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return hundred
	}
	pct := spent.Mul(hundred).Div(limit)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}
