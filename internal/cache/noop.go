package cache

import (
	"context"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

// NoopCache is used when no Redis address is configured; every lookup is a
// miss and every write is dropped.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetDescriptor(ctx context.Context, id int64) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) GetEtagDescriptor(ctx context.Context, id int64) (string, error) {
	return "", nil
}

func (n *NoopCache) SetDescriptor(ctx context.Context, id int64, data []byte, ttl time.Duration) {
}

func (n *NoopCache) SetEtagDescriptor(ctx context.Context, id int64, etag string, ttl time.Duration) {
}

func (n *NoopCache) GetVariantURL(ctx context.Context, id int64, purpose model.Purpose) (string, error) {
	return "", nil
}

func (n *NoopCache) SetVariantURL(ctx context.Context, id int64, purpose model.Purpose, url string, ttl time.Duration) {
}

func (n *NoopCache) GetProfileURL(ctx context.Context, owner string, purpose model.Purpose) (string, error) {
	return "", nil
}

func (n *NoopCache) SetProfileURL(ctx context.Context, owner string, purpose model.Purpose, url string, ttl time.Duration) {
}

func (n *NoopCache) InvalidateDescriptor(ctx context.Context, id int64, owner string) error {
	return nil
}
