package port

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a stored blob.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// BlobStorage defines blob backend operations over named buckets. The
// pipeline only ever sees two buckets: the private one holding originals and
// the public one holding derived variants.
type BlobStorage interface {
	InitBucket(bucket string) error
	// PresignedUploadURL mints a write-only URL bound to the exact blob name
	// and content type, valid for expiry.
	PresignedUploadURL(ctx context.Context, bucket, fileKey, contentType string, expiry time.Duration) (string, error)
	FileExists(ctx context.Context, bucket, fileKey string) (bool, error)
	StatFile(ctx context.Context, bucket, fileKey string) (FileInfo, error)
	GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error)
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
	RemoveFile(ctx context.Context, bucket, fileKey string) error
	ListFiles(ctx context.Context, bucket, prefix string, max int) ([]string, error)
	// FileURL derives the public URL for a blob: the CDN endpoint when one is
	// configured, the direct backend URL otherwise. Never called for the
	// private bucket on a client-facing path.
	FileURL(bucket, fileKey string) string
}
