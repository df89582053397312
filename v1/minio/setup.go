package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Logger is the subset of *logger.Logger the archive uses.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Minio archives uploaded documents in a single bucket.
type Minio struct {
	Client *minio.Client
	cfg    Config
	logger Logger
}

// NewClient connects to MinIO, validates the credentials and makes sure the
// configured bucket exists.
func NewClient(cfg Config, logger Logger) (*Minio, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := connectToMinio(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to minio", err, map[string]interface{}{
			"endpoint": cfg.Endpoint,
			"region":   cfg.Region,
			"secure":   cfg.UseSSL,
		})
		return nil, err
	}

	m := &Minio{Client: client, cfg: cfg, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)
	defer cancel()
	if err := m.ensureBucketExists(ctx); err != nil {
		logger.Error("failed to verify bucket", err, map[string]interface{}{
			"endpoint": cfg.Endpoint,
			"bucket":   cfg.BucketName,
		})
		return nil, err
	}
	return m, nil
}

func connectToMinio(cfg Config, logger Logger) (*minio.Client, error) {
	logger.Info("Connecting to MinIO", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"region":   cfg.Region,
		"secure":   cfg.UseSSL,
	})

	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
}

// HealthCheck lists buckets, which needs only minimal permissions.
func (m *Minio) HealthCheck(ctx context.Context) error {
	if _, err := m.Client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("minio health check: %w", err)
	}
	return nil
}

func (m *Minio) ensureBucketExists(ctx context.Context) error {
	bucket := m.cfg.BucketName

	exists, err := m.Client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists, bucket: %v, err: %w", bucket, err)
	}
	if exists {
		return nil
	}

	m.logger.Info("Bucket does not exist, creating it", nil, map[string]interface{}{
		"bucket": bucket,
		"region": m.cfg.Region,
	})
	if err := m.Client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: m.cfg.Region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	m.logger.Info("Successfully created bucket", nil, map[string]interface{}{"bucket": bucket})
	return nil
}
