// Package storage keeps the budget snapshot as one object in an S3 bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	cfg "github.com/dafibh/zerobudget/internal/config"
	"github.com/dafibh/zerobudget/internal/domain"
	"github.com/rs/zerolog/log"
)

// ObjectAPI is the subset of the S3 client used by the snapshot repository
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3SnapshotRepository implements domain.SnapshotRepository using AWS S3
type S3SnapshotRepository struct {
	client ObjectAPI
	bucket string
	key    string
}

var _ domain.SnapshotRepository = (*S3SnapshotRepository)(nil)

// NewS3SnapshotRepository connects to S3 and makes sure the bucket exists
func NewS3SnapshotRepository(ctx context.Context, s3cfg cfg.S3Config) (*S3SnapshotRepository, error) {
	// Build AWS config options
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(s3cfg.Region),
	}

	// Add credentials if provided
	if s3cfg.AccessKeyID != "" && s3cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				s3cfg.AccessKeyID,
				s3cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Endpoint override for MinIO/LocalStack
	var client *s3.Client
	if s3cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.UsePathStyle = true // Required for MinIO
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	if err := ensureBucket(ctx, client, s3cfg.Bucket); err != nil {
		return nil, err
	}

	return NewS3SnapshotRepositoryWithClient(client, s3cfg.Bucket, s3cfg.Key), nil
}

// NewS3SnapshotRepositoryWithClient wraps an existing client
func NewS3SnapshotRepositoryWithClient(client ObjectAPI, bucket, key string) *S3SnapshotRepository {
	return &S3SnapshotRepository{client: client, bucket: bucket, key: key}
}

// ensureBucket creates the bucket if it doesn't exist. The bucket stays private.
func ensureBucket(ctx context.Context, client *s3.Client, bucket string) error {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket (may be permission denied): %w", err)
	}

	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	log.Info().Str("bucket", bucket).Msg("Created snapshot bucket")
	return nil
}

// Load fetches the snapshot object. A missing object yields an empty snapshot.
func (r *S3SnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return domain.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to get snapshot object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot object: %w", err)
	}

	snap, decodeErr := domain.DecodeSnapshot(data)
	if decodeErr != nil {
		log.Warn().Err(decodeErr).Str("key", r.key).Msg("Discarded malformed budget data")
	}
	return snap, nil
}

// Save overwrites the snapshot object
func (r *S3SnapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	payload, err := domain.EncodeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.key),
		Body:          bytes.NewReader(payload),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(payload))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot object: %w", err)
	}
	return nil
}
