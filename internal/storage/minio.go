package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/realestate-ads/config"
)

// MinioStore keeps announcement images in a single bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

func newClient(cfg config.MinioConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}
	return client, nil
}

// NewMinioStore connects to minio and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*MinioStore, error) {
	logger.InfoContext(ctx, "Initializing object storage",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("bucket", cfg.Bucket),
		slog.Bool("use_ssl", cfg.UseSSL),
	)

	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.InfoContext(ctx, "Bucket created", slog.String("bucket", cfg.Bucket))
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Put uploads the object and returns its URL.
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	ctx, span := otel.Tracer("MinioStore").Start(ctx, "Put")
	defer span.End()

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "PutObject failed", slog.String("key", key), slog.Any("error", err))
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	s.logger.InfoContext(ctx, "Object uploaded",
		slog.String("bucket", info.Bucket),
		slog.String("key", info.Key),
		slog.Int64("size", info.Size),
	)
	return s.URL(key), nil
}

func (s *MinioStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

// URL is <endpoint>/<bucket>/<key>, with the scheme the client was built with.
func (s *MinioStore) URL(key string) string {
	u := *s.client.EndpointURL()
	u.Path = path.Join("/", s.bucket, key)
	return u.String()
}
