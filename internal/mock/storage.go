package mock

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/port"
)

// Storage implements the blob storage interface for tests.
type Storage struct {
	// stored values
	StatInfoOut port.FileInfo
	GetOut      io.ReadSeeker
	ExistsOut   bool
	ListOut     []string
	URLBase     string

	// captured inputs
	ObjectKey   string
	TTL         time.Duration
	ContentType string
	SavedKeys   []string
	SavedOpts   map[string]map[string]string
	RemovedKeys []string
	ListPrefix  string

	// errors
	InitBucketErr         error
	GenerateUploadLinkErr error
	StatErr               error
	RemoveErr             error
	RemoveErrPerKey       map[string]error
	GetErr                error
	SaveErr               error
	FileExistsErr         error
	ListErr               error

	// call flags
	InitBucketCalled         bool
	GenerateUploadLinkCalled bool
	StatCalled               bool
	RemoveCalled             bool
	GetCalled                bool
	SaveCalled               bool
	FileExistsCalled         bool
	ListCalled               bool
}

func (m *Storage) InitBucket(bucket string) error {
	m.InitBucketCalled = true
	return m.InitBucketErr
}

func (m *Storage) PresignedUploadURL(ctx context.Context, bucket, fileKey, contentType string, expiry time.Duration) (string, error) {
	m.GenerateUploadLinkCalled = true
	m.ObjectKey = fileKey
	m.ContentType = contentType
	m.TTL = expiry
	if m.GenerateUploadLinkErr != nil {
		return "", m.GenerateUploadLinkErr
	}
	return "https://example.com/upload/" + fileKey, nil
}

func (m *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.FileExistsCalled = true
	if m.FileExistsErr != nil {
		return false, m.FileExistsErr
	}
	return m.ExistsOut, nil
}

func (m *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfoOut, nil
}

func (m *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.GetOut != nil {
		return noopRSC{m.GetOut}, nil
	}
	return noopRSC{bytes.NewReader([]byte("dummy"))}, nil
}

func (m *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.SavedKeys = append(m.SavedKeys, fileKey)
	if m.SavedOpts == nil {
		m.SavedOpts = make(map[string]map[string]string)
	}
	m.SavedOpts[fileKey] = opts
	return m.SaveErr
}

func (m *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	if err, ok := m.RemoveErrPerKey[fileKey]; ok {
		return err
	}
	return m.RemoveErr
}

func (m *Storage) ListFiles(ctx context.Context, bucket, prefix string, max int) ([]string, error) {
	m.ListCalled = true
	m.ListPrefix = prefix
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *Storage) FileURL(bucket, fileKey string) string {
	base := m.URLBase
	if base == "" {
		base = "https://cdn.example.com"
	}
	return base + "/" + fileKey
}
