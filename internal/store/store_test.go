package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = domain.MustParseMonthKey("2024-03")

func newTestStore(repo domain.SnapshotRepository) *Store {
	return New(nil, repo, zerolog.Nop())
}

func TestWithTransaction_CommitsStagedChanges(t *testing.T) {
	s := newTestStore(nil)

	err := s.WithTransaction(func(tx *Tx) error {
		require.NoError(t, tx.AddCategory(domain.Category{ID: "c1", Name: "Food", Limit: decimal.NewFromInt(400)}))
		require.NoError(t, tx.AddTemplate(domain.RecurringTemplate{ID: "r1", Name: "Rent", Amount: decimal.NewFromInt(1200), CategoryID: "c1"}))
		require.NoError(t, tx.OpenLedger(domain.Ledger{MonthKey: march, Income: decimal.NewFromInt(3000), Status: domain.LedgerStatusOpen}))
		tx.AppendTransactions(domain.Transaction{ID: "t1", MonthKey: march, CategoryID: "c1", Amount: decimal.NewFromInt(1200)})

		// Staged changes are visible inside the transaction
		_, ok := tx.Category("c1")
		assert.True(t, ok)
		assert.Len(t, tx.Transactions(march), 1)
		return nil
	})
	require.NoError(t, err)

	s.View(func(r Reader) {
		assert.Len(t, r.Categories(), 1)
		assert.Len(t, r.Templates(), 1)
		_, ok := r.Ledger(march)
		assert.True(t, ok)
		assert.Len(t, r.Transactions(march), 1)
		assert.Equal(t, 1, r.TransactionCount())
	})
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	s := newTestStore(nil)
	boom := errors.New("boom")

	err := s.WithTransaction(func(tx *Tx) error {
		require.NoError(t, tx.OpenLedger(domain.Ledger{MonthKey: march, Income: decimal.NewFromInt(3000)}))
		tx.AppendTransactions(domain.Transaction{ID: "t1", MonthKey: march, CategoryID: "c1", Amount: decimal.NewFromInt(10)})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s.View(func(r Reader) {
		_, ok := r.Ledger(march)
		assert.False(t, ok, "ledger must not survive a failed transaction")
		assert.Equal(t, 0, r.TransactionCount())
	})
}

func TestTx_OpenLedgerTwice(t *testing.T) {
	s := newTestStore(nil)
	ledger := domain.Ledger{MonthKey: march, Income: decimal.NewFromInt(1)}

	require.NoError(t, s.WithTransaction(func(tx *Tx) error { return tx.OpenLedger(ledger) }))

	err := s.WithTransaction(func(tx *Tx) error { return tx.OpenLedger(ledger) })
	assert.ErrorIs(t, err, domain.ErrMonthAlreadyOpen)
}

func TestTx_DuplicateIDs(t *testing.T) {
	s := newTestStore(nil)

	err := s.WithTransaction(func(tx *Tx) error {
		require.NoError(t, tx.AddCategory(domain.Category{ID: "c1", Name: "A"}))
		return tx.AddCategory(domain.Category{ID: "c1", Name: "B"})
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = s.WithTransaction(func(tx *Tx) error {
		return tx.AddTemplate(domain.RecurringTemplate{})
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s.View(func(r Reader) {
		assert.Empty(t, r.Categories())
	})
}

func TestTx_Reset(t *testing.T) {
	seed := domain.NewSnapshot()
	seed.Categories = []domain.Category{{ID: "c1", Name: "Food"}}
	seed.MonthlyLedgers[march] = domain.Ledger{MonthKey: march}
	seed.Transactions = []domain.Transaction{{ID: "t1", MonthKey: march, CategoryID: "c1", Amount: decimal.NewFromInt(5)}}
	s := New(seed, nil, zerolog.Nop())

	err := s.WithTransaction(func(tx *Tx) error {
		tx.Reset()
		_, ok := tx.Category("c1")
		assert.False(t, ok)
		assert.Empty(t, tx.Ledgers())
		assert.Equal(t, 0, tx.TransactionCount())
		return nil
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Empty(t, snap.Categories)
	assert.Empty(t, snap.MonthlyLedgers)
	assert.Empty(t, snap.Transactions)
}

func TestReader_LedgersSorted(t *testing.T) {
	s := newTestStore(nil)
	months := []string{"2024-05", "2023-11", "2024-01"}

	require.NoError(t, s.WithTransaction(func(tx *Tx) error {
		for _, m := range months {
			if err := tx.OpenLedger(domain.Ledger{MonthKey: domain.MustParseMonthKey(m)}); err != nil {
				return err
			}
		}
		return nil
	}))

	s.View(func(r Reader) {
		ledgers := r.Ledgers()
		require.Len(t, ledgers, 3)
		assert.Equal(t, "2023-11", ledgers[0].MonthKey.String())
		assert.Equal(t, "2024-01", ledgers[1].MonthKey.String())
		assert.Equal(t, "2024-05", ledgers[2].MonthKey.String())
	})
}

func TestReader_TransactionsFilteredByMonth(t *testing.T) {
	s := newTestStore(nil)
	april := march.Next()

	require.NoError(t, s.WithTransaction(func(tx *Tx) error {
		tx.AppendTransactions(
			domain.Transaction{ID: "a", MonthKey: march},
			domain.Transaction{ID: "b", MonthKey: april},
			domain.Transaction{ID: "c", MonthKey: march},
		)
		return nil
	}))

	s.View(func(r Reader) {
		got := r.Transactions(march)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "c", got[1].ID)
		assert.Len(t, r.Transactions(april), 1)
		assert.Empty(t, r.Transactions(april.Next()))
	})
}

func TestStore_FlushesCommittedState(t *testing.T) {
	repo := testutil.NewMockSnapshotRepository(nil)
	s := newTestStore(repo)

	require.NoError(t, s.WithTransaction(func(tx *Tx) error {
		return tx.AddCategory(domain.Category{ID: "c1", Name: "Food"})
	}))
	require.NoError(t, s.Close(context.Background()))

	last := repo.LastSaved()
	require.NotNil(t, last)
	require.Len(t, last.Categories, 1)
	assert.Equal(t, "c1", last.Categories[0].ID)
}

func TestStore_NoFlushWithoutChanges(t *testing.T) {
	repo := testutil.NewMockSnapshotRepository(nil)
	s := newTestStore(repo)

	require.NoError(t, s.WithTransaction(func(tx *Tx) error { return nil }))
	require.NoError(t, s.Close(context.Background()))

	assert.Equal(t, 0, repo.SaveCount())
}

func TestStore_LatestSnapshotWins(t *testing.T) {
	release := make(chan struct{})
	repo := testutil.NewMockSnapshotRepository(nil)
	repo.SaveFn = func(ctx context.Context, snapshot *domain.Snapshot) error {
		if len(snapshot.Categories) == 1 {
			<-release
		}
		return nil
	}
	s := newTestStore(repo)

	for _, id := range []string{"c1", "c2", "c3", "c4"} {
		id := id
		require.NoError(t, s.WithTransaction(func(tx *Tx) error {
			return tx.AddCategory(domain.Category{ID: id, Name: id})
		}))
	}
	close(release)
	require.NoError(t, s.Close(context.Background()))

	last := repo.LastSaved()
	require.NotNil(t, last)
	assert.Len(t, last.Categories, 4)
	assert.LessOrEqual(t, repo.SaveCount(), 4)
}

func TestStore_FlushFailureKeepsState(t *testing.T) {
	saveErr := errors.New("disk full")
	repo := testutil.NewMockSnapshotRepository(nil)
	repo.SaveFn = func(ctx context.Context, snapshot *domain.Snapshot) error {
		return saveErr
	}
	s := newTestStore(repo)

	require.NoError(t, s.WithTransaction(func(tx *Tx) error {
		return tx.AddCategory(domain.Category{ID: "c1", Name: "Food"})
	}))
	require.True(t, repo.WaitForSave(time.Second))

	assert.Eventually(t, func() bool {
		return errors.Is(s.LastFlushError(), saveErr)
	}, time.Second, 5*time.Millisecond)

	s.View(func(r Reader) {
		assert.Len(t, r.Categories(), 1, "in-memory state must survive a failed flush")
	})

	assert.ErrorIs(t, s.Close(context.Background()), saveErr)
}

func TestStore_CloseIsIdempotent(t *testing.T) {
	s := newTestStore(testutil.NewMockSnapshotRepository(nil))

	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	// Commits after close still apply in memory
	require.NoError(t, s.WithTransaction(func(tx *Tx) error {
		return tx.AddCategory(domain.Category{ID: "c1", Name: "Food"})
	}))
	assert.Len(t, s.Snapshot().Categories, 1)
}

func TestOpen_LoadsSnapshot(t *testing.T) {
	seed := domain.NewSnapshot()
	seed.Categories = []domain.Category{{ID: "c1", Name: "Food"}}
	repo := testutil.NewMockSnapshotRepository(seed)

	s, err := Open(context.Background(), repo, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close(context.Background())

	s.View(func(r Reader) {
		c, ok := r.Category("c1")
		assert.True(t, ok)
		assert.Equal(t, "Food", c.Name)
	})
}

func TestOpen_LoadError(t *testing.T) {
	repo := testutil.NewMockSnapshotRepository(nil)
	repo.LoadFn = func(ctx context.Context) (*domain.Snapshot, error) {
		return nil, errors.New("unreachable")
	}

	_, err := Open(context.Background(), repo, zerolog.Nop())
	assert.Error(t, err)
}

func TestSnapshot_IsIndependentCopy(t *testing.T) {
	s := newTestStore(nil)
	require.NoError(t, s.WithTransaction(func(tx *Tx) error {
		return tx.AddCategory(domain.Category{ID: "c1", Name: "Food"})
	}))

	snap := s.Snapshot()
	snap.Categories[0].Name = "Mutated"

	s.View(func(r Reader) {
		c, _ := r.Category("c1")
		assert.Equal(t, "Food", c.Name)
	})
}
