package port

import (
	"context"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/model"
)

// Cache provides the three purpose-keyed families of descriptor caching:
// full descriptor snapshots, per-variant URLs and profile-picture URLs.
// Failures degrade silently to the store; Set methods therefore do not
// return errors.
type Cache interface {
	GetDescriptor(ctx context.Context, id int64) ([]byte, error)
	GetEtagDescriptor(ctx context.Context, id int64) (string, error)
	SetDescriptor(ctx context.Context, id int64, data []byte, ttl time.Duration)
	SetEtagDescriptor(ctx context.Context, id int64, etag string, ttl time.Duration)

	GetVariantURL(ctx context.Context, id int64, purpose model.Purpose) (string, error)
	SetVariantURL(ctx context.Context, id int64, purpose model.Purpose, url string, ttl time.Duration)

	GetProfileURL(ctx context.Context, owner string, purpose model.Purpose) (string, error)
	SetProfileURL(ctx context.Context, owner string, purpose model.Purpose, url string, ttl time.Duration)

	// InvalidateDescriptor removes every key of all three families for the
	// given descriptor by enumerating the closed purpose set. O(1) per
	// descriptor, no keyspace scan.
	InvalidateDescriptor(ctx context.Context, id int64, owner string) error
}
