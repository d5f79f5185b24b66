// Package storage persists uploaded product images. The local driver writes
// under the public directory that the server exposes statically; the minio
// driver writes to an S3-compatible bucket.
package storage

import (
	"context"
	"io"
)

// UploadsDir is the path segment images are stored under.
const UploadsDir = "uploads"

type ImageStore interface {
	// Save stores the image under name and returns its public URL.
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
}
