package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *domain.Snapshot {
	march := domain.MustParseMonthKey("2024-03")
	snap := domain.NewSnapshot()
	snap.Categories = append(snap.Categories, domain.Category{ID: "c1", Name: "Food", Limit: decimal.NewFromInt(400)})
	snap.RecurringExpenses = append(snap.RecurringExpenses, domain.RecurringTemplate{
		ID: "r1", Name: "Rent", Amount: decimal.NewFromInt(1200), CategoryID: "c1",
	})
	snap.MonthlyLedgers[march] = domain.Ledger{
		MonthKey: march, Income: decimal.NewFromInt(3000), Rollover: decimal.Zero, Status: domain.LedgerStatusOpen,
	}
	snap.Transactions = append(snap.Transactions, domain.Transaction{
		ID: "t1", MonthKey: march, CategoryID: "c1", Amount: decimal.RequireFromString("42.50"),
		Description: "Market", Timestamp: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
	})
	return snap
}

func TestLoad_MissingFile(t *testing.T) {
	repo := NewSnapshotRepository(filepath.Join(t.TempDir(), "budget.json"))

	snap, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, snap.Categories)
	assert.Empty(t, snap.MonthlyLedgers)
	assert.NotNil(t, snap.Transactions)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "budget.json")
	repo := NewSnapshotRepository(path)
	want := sampleSnapshot()

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Food", got.Categories[0].Name)
	assert.True(t, got.Categories[0].Limit.Equal(decimal.NewFromInt(400)))
	require.Len(t, got.Transactions, 1)
	assert.True(t, got.Transactions[0].Amount.Equal(decimal.RequireFromString("42.50")))
	assert.True(t, got.Transactions[0].Timestamp.Equal(want.Transactions[0].Timestamp))
	ledger, ok := got.MonthlyLedgers[domain.MustParseMonthKey("2024-03")]
	require.True(t, ok)
	assert.True(t, ledger.Income.Equal(decimal.NewFromInt(3000)))
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewSnapshotRepository(filepath.Join(dir, "budget.json"))

	require.NoError(t, repo.Save(context.Background(), sampleSnapshot()))
	require.NoError(t, repo.Save(context.Background(), domain.NewSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "budget.json", entries[0].Name())

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Categories, "second save replaces the first")
}

func TestLoad_PartiallyCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	doc := `{
		"categories": [{"id": "c1", "name": "Food", "limit": "400"}],
		"recurringExpenses": "not a list",
		"monthlyLedgers": {"2024-03": {"income": "100", "rollover": "0", "status": "OPEN"}},
		"transactions": [{"id": ""}, {"id": "t1", "monthKey": "2024-03", "categoryId": "c1", "amount": "5", "timestamp": "2024-03-01T00:00:00Z"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	snap, err := NewSnapshotRepository(path).Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, snap.Categories, 1)
	assert.Empty(t, snap.RecurringExpenses)
	assert.Len(t, snap.MonthlyLedgers, 1)
	assert.Len(t, snap.Transactions, 1)
}

func TestLoad_NotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	snap, err := NewSnapshotRepository(path).Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, snap.Categories)
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSnapshotRepository(filepath.Join(t.TempDir(), "budget.json")).Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
