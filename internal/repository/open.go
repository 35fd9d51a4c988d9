// Package repository selects the snapshot backend named by the configuration.
package repository

import (
	"context"
	"fmt"

	"github.com/dafibh/zerobudget/internal/config"
	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/dafibh/zerobudget/internal/repository/file"
	"github.com/dafibh/zerobudget/internal/repository/postgres"
	"github.com/dafibh/zerobudget/internal/repository/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Open returns the configured snapshot repository and a function releasing
// its resources
func Open(ctx context.Context, cfg *config.Config) (domain.SnapshotRepository, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageFile:
		log.Info().Str("path", cfg.DataFile).Msg("Using file storage")
		return file.NewSnapshotRepository(cfg.DataFile), func() {}, nil

	case config.StoragePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info().Msg("Connected to database")
		return postgres.NewSnapshotRepository(pool), pool.Close, nil

	case config.StorageS3:
		repo, err := storage.NewS3SnapshotRepository(ctx, cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to s3: %w", err)
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Str("key", cfg.S3.Key).Msg("Using S3 storage")
		return repo, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
