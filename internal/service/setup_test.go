package service

import (
	"testing"
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/store"
	"github.com/dafibh/zerobudget/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// testEnv wires every service over one in-memory store
type testEnv struct {
	store        *store.Store
	publisher    *testutil.RecordingPublisher
	txnIDs       *testutil.FailingIDGenerator
	categories   *CategoryService
	templates    *RecurringTemplateService
	months       *MonthService
	transactions *TransactionService
	summaries    *SummaryService
	budget       *BudgetService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.New(nil, nil, zerolog.Nop())
	env := &testEnv{
		store:      st,
		publisher:  &testutil.RecordingPublisher{},
		txnIDs:     testutil.SequentialIDGenerator("txn-"),
		categories: NewCategoryService(st, testutil.SequentialIDGenerator("cat-")),
		templates:  NewRecurringTemplateService(st, testutil.SequentialIDGenerator("rec-")),
		summaries:  NewSummaryService(st),
		budget:     NewBudgetService(st),
	}
	env.months = NewMonthService(st, env.txnIDs)
	env.months.now = func() time.Time { return fixedNow }
	env.transactions = NewTransactionService(st, env.txnIDs)
	env.transactions.now = func() time.Time { return fixedNow }

	env.categories.SetEventPublisher(env.publisher)
	env.templates.SetEventPublisher(env.publisher)
	env.months.SetEventPublisher(env.publisher)
	env.transactions.SetEventPublisher(env.publisher)
	env.budget.SetEventPublisher(env.publisher)
	return env
}

func (e *testEnv) mustCategory(t *testing.T, name string, limit int64) *domain.Category {
	t.Helper()
	c, err := e.categories.CreateCategory(name, decimal.NewFromInt(limit))
	if err != nil {
		t.Fatalf("CreateCategory(%s): %v", name, err)
	}
	return c
}

func (e *testEnv) mustTemplate(t *testing.T, name string, amount int64, categoryID string) *domain.RecurringTemplate {
	t.Helper()
	tmpl, err := e.templates.CreateTemplate(name, decimal.NewFromInt(amount), categoryID)
	if err != nil {
		t.Fatalf("CreateTemplate(%s): %v", name, err)
	}
	return tmpl
}

func (e *testEnv) mustOpen(t *testing.T, month string, income, rollover int64) *OpenedMonth {
	t.Helper()
	opened, err := e.months.OpenMonth(domain.MustParseMonthKey(month), decimal.NewFromInt(income), decimal.NewFromInt(rollover))
	if err != nil {
		t.Fatalf("OpenMonth(%s): %v", month, err)
	}
	return opened
}

func (e *testEnv) mustRecord(t *testing.T, month, categoryID string, amount string) *domain.Transaction {
	t.Helper()
	txn, err := e.transactions.RecordTransaction(domain.RecordTransactionInput{
		Month:      domain.MustParseMonthKey(month),
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
	})
	if err != nil {
		t.Fatalf("RecordTransaction(%s, %s): %v", month, amount, err)
	}
	return txn
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
