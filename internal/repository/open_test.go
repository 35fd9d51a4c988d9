package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dafibh/zerobudget/internal/config"
	"github.com/dafibh/zerobudget/internal/repository/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")

	repo, release, err := Open(context.Background(), &config.Config{StorageBackend: config.StorageFile, DataFile: path})

	require.NoError(t, err)
	defer release()
	fileRepo, ok := repo.(*file.SnapshotRepository)
	require.True(t, ok)
	assert.Equal(t, path, fileRepo.Path())
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StorageBackend: "memory"})

	assert.Error(t, err)
}
