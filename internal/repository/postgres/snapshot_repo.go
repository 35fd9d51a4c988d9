// Package postgres stores the budget snapshot as a single jsonb row.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	loadSnapshotSQL = `SELECT document FROM budget_snapshots WHERE id = 1`

	saveSnapshotSQL = `
INSERT INTO budget_snapshots (id, document, updated_at)
VALUES (1, $1, NOW())
ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
)

// SnapshotRepository implements domain.SnapshotRepository using PostgreSQL
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

var _ domain.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Load reads the stored document, or returns an empty snapshot when no row exists
func (r *SnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var document []byte
	err := r.pool.QueryRow(ctx, loadSnapshotSQL).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query budget snapshot: %w", err)
	}

	snap, decodeErr := domain.DecodeSnapshot(document)
	if decodeErr != nil {
		log.Warn().Err(decodeErr).Msg("Discarded malformed budget data")
	}
	return snap, nil
}

// Save upserts the document row
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	document, err := domain.EncodeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if _, err := r.pool.Exec(ctx, saveSnapshotSQL, document); err != nil {
		return fmt.Errorf("upsert budget snapshot: %w", err)
	}
	return nil
}
