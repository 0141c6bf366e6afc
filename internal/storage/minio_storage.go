package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage is the blob backend adapter. The same client serves the
// private bucket (originals) and the public bucket (derived variants); which
// bucket a call touches is the caller's choice.
type MinioStorage struct {
	client      minioClient
	useSSL      bool
	cdnEndpoint string
}

// compile-time check: *MinioStorage must satisfy port.BlobStorage
var _ port.BlobStorage = (*MinioStorage)(nil)

// NewStorage initialises the MinIO client. It fails with media.ErrConfig
// when no credential capable of minting signed URLs is configured.
func NewStorage(endpoint, accessKey, secretKey string, useSSL bool, cdnEndpoint string) (*MinioStorage, error) {
	logger.Info(context.Background(), "initialising minio client...")

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("%w: blob backend needs endpoint and signing credentials", media.ErrConfig)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client, useSSL: useSSL, cdnEndpoint: strings.TrimSuffix(cdnEndpoint, "/")}, nil
}

func (s *MinioStorage) InitBucket(bucket string) error {
	ctx := context.Background()
	ok, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", bucket)
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

// PresignedUploadURL mints a write-only URL for exactly one blob name and
// content type. The Content-Type header is part of the signature, so a PUT
// declaring anything else is rejected by the backend.
func (s *MinioStorage) PresignedUploadURL(ctx context.Context, bucket, fileKey, contentType string, expiry time.Duration) (string, error) {
	logger.Infof(ctx, "generating a presigned upload link for file %q in bucket %q...", fileKey, bucket)

	headers := http.Header{}
	headers.Set("Content-Type", contentType)

	presignedURL, err := s.client.PresignHeader(ctx, http.MethodPut, bucket, fileKey, expiry, url.Values{}, headers)
	if err != nil {
		return "", mapMinioErr(err)
	}
	return presignedURL.String(), nil
}

func (s *MinioStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	logger.Infof(ctx, "checking if file %q exists in bucket %q...", fileKey, bucket)

	_, err := s.StatFile(ctx, bucket, fileKey)
	if errors.Is(err, media.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MinioStorage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	logger.Infof(ctx, "getting stats on file %q in bucket %q...", fileKey, bucket)

	info, err := s.client.StatObject(ctx, bucket, fileKey, minio.StatObjectOptions{})
	if err != nil {
		return port.FileInfo{}, mapMinioErr(err)
	}
	return port.FileInfo{
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

func (s *MinioStorage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	logger.Infof(ctx, "getting file %q from bucket %q...", fileKey, bucket)

	obj, err := s.client.GetObject(ctx, bucket, fileKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return obj, nil
}

func (s *MinioStorage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	logger.Infof(ctx, "saving file %q into bucket %q...", fileKey, bucket)

	putOpts := minio.PutObjectOptions{}
	if ct := opts["Content-Type"]; ct != "" {
		putOpts.ContentType = ct
	}
	if cc := opts["Cache-Control"]; cc != "" {
		putOpts.CacheControl = cc
	}

	_, err := s.client.PutObject(ctx, bucket, fileKey, reader, fileSize, putOpts)
	if err != nil {
		return mapMinioErr(err)
	}
	return nil
}

func (s *MinioStorage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	logger.Infof(ctx, "removing file %q from bucket %q...", fileKey, bucket)

	err := s.client.RemoveObject(ctx, bucket, fileKey, minio.RemoveObjectOptions{})
	return mapMinioErr(err)
}

func (s *MinioStorage) ListFiles(ctx context.Context, bucket, prefix string, max int) ([]string, error) {
	logger.Infof(ctx, "listing files under %q in bucket %q...", prefix, bucket)

	var keys []string
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, mapMinioErr(obj.Err)
		}
		keys = append(keys, obj.Key)
		if max > 0 && len(keys) >= max {
			break
		}
	}
	return keys, nil
}

// FileURL derives the client-facing URL of a public blob. With a CDN
// endpoint configured the CDN fronts the bucket root, so the bucket name is
// not part of the path.
func (s *MinioStorage) FileURL(bucket, fileKey string) string {
	if s.cdnEndpoint != "" {
		return s.cdnEndpoint + "/" + fileKey
	}
	return s.client.EndpointURL().String() + "/" + bucket + "/" + fileKey
}
