// Package file stores the budget snapshot as a JSON document on local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/rs/zerolog/log"
)

// SnapshotRepository implements domain.SnapshotRepository on a single JSON file
type SnapshotRepository struct {
	path string
}

var _ domain.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a repository for the document at path
func NewSnapshotRepository(path string) *SnapshotRepository {
	return &SnapshotRepository{path: path}
}

// Path returns the location of the document
func (r *SnapshotRepository) Path() string {
	return r.path
}

// Load reads the document. A missing file yields an empty snapshot; malformed
// fields are logged and left empty.
func (r *SnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", r.path).Msg("No budget file found, starting empty")
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read budget file: %w", err)
	}

	snap, decodeErr := domain.DecodeSnapshot(data)
	if decodeErr != nil {
		log.Warn().Err(decodeErr).Str("path", r.path).Msg("Discarded malformed budget data")
	}
	return snap, nil
}

// Save replaces the document atomically: the snapshot is written to a temp
// file in the same directory, synced and renamed over the old file.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := domain.EncodeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp data file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
