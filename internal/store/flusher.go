package store

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/rs/zerolog"
)

// flushTimeout bounds a single write to the snapshot repository
const flushTimeout = 30 * time.Second

// flusher writes snapshots to a repository on its own goroutine. Only the
// latest scheduled snapshot is kept: a newer commit replaces a pending one
// that has not been picked up yet.
type flusher struct {
	repo    domain.SnapshotRepository
	logger  zerolog.Logger
	pending chan *domain.Snapshot
	doneCh  chan struct{}

	mu      sync.Mutex
	lastErr error
}

func newFlusher(repo domain.SnapshotRepository, logger zerolog.Logger) *flusher {
	return &flusher{
		repo:    repo,
		logger:  logger.With().Str("component", "flusher").Logger(),
		pending: make(chan *domain.Snapshot, 1),
		doneCh:  make(chan struct{}),
	}
}

// schedule hands snap to the flusher without blocking. Callers are serialized
// by the store lock, so there is a single producer.
func (f *flusher) schedule(snap *domain.Snapshot) {
	for {
		select {
		case f.pending <- snap:
			return
		default:
		}
		// Drop the stale snapshot still waiting in the buffer.
		select {
		case <-f.pending:
		default:
		}
	}
}

func (f *flusher) run() {
	defer close(f.doneCh)

	for snap := range f.pending {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		start := time.Now()
		err := f.repo.Save(ctx, snap)
		cancel()

		f.mu.Lock()
		f.lastErr = err
		f.mu.Unlock()

		if err != nil {
			f.logger.Error().Err(err).Msg("Failed to persist budget snapshot")
			continue
		}
		f.logger.Debug().
			Int("transactions", len(snap.Transactions)).
			Dur("latency", time.Since(start)).
			Msg("Persisted budget snapshot")
	}
}

func (f *flusher) lastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// close stops the flusher after the pending snapshot, if any, is written
func (f *flusher) close(ctx context.Context) error {
	close(f.pending)
	select {
	case <-f.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
