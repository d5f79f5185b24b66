package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/arzan03/storefront/internal/config"
)

// MinioStore writes images to an S3-compatible bucket whose uploads/ prefix
// is readable anonymously, so the returned URLs can be used as product
// images directly.
type MinioStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	scheme   string
}

// NewMinio connects to MinIO, creates the image bucket if needed and opens
// its uploads/ prefix for public reads.
func NewMinio(ctx context.Context, cfg config.MinioConfig, log *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage/minio: connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage/minio: check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage/minio: create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("Created bucket", zap.String("bucket", cfg.Bucket))
	}

	if err := client.SetBucketPolicy(ctx, cfg.Bucket, publicReadPolicy(cfg.Bucket)); err != nil {
		return nil, fmt.Errorf("storage/minio: set policy on %s: %w", cfg.Bucket, err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, endpoint: cfg.Endpoint, scheme: scheme}, nil
}

// publicReadPolicy allows anonymous GetObject on uploads/ only.
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/%s/*"]
  }]
}`, bucket, UploadsDir)
}

// Save uploads the image under uploads/ and returns its public URL.
func (s *MinioStore) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	objectName := UploadsDir + "/" + name
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage/minio: put %s: %w", objectName, err)
	}

	u := url.URL{
		Scheme: s.scheme,
		Host:   s.endpoint,
		Path:   "/" + s.bucket + "/" + objectName,
	}
	return u.String(), nil
}
