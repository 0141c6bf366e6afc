package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type variantGetterSrv struct {
	repo     port.DescriptorRepository
	cache    port.Cache
	cacheTTL time.Duration
}

// compile-time check: *variantGetterSrv must satisfy port.VariantGetter
var _ port.VariantGetter = (*variantGetterSrv)(nil)

// NewVariantGetter constructs the per-purpose URL read use case.
func NewVariantGetter(repo port.DescriptorRepository, cache port.Cache, cacheTTL time.Duration) port.VariantGetter {
	return &variantGetterSrv{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

// GetVariantURL resolves the CDN URL for one purpose of a ready descriptor.
// Reads go cache first; a cache hit is authoritative for its TTL.
func (s *variantGetterSrv) GetVariantURL(ctx context.Context, id int64, purpose model.Purpose) (string, error) {
	if !purpose.IsValid() {
		return "", fmt.Errorf("purpose %q: %w", purpose, ErrBadPurpose)
	}

	if url, err := s.cache.GetVariantURL(ctx, id, purpose); err != nil {
		logger.Warnf(ctx, "variant cache read failed for descriptor #%d: %v", id, err)
	} else if url != "" {
		return url, nil
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	switch d.Status {
	case model.StatusReady:
		// fall through to the variant lookup
	case model.StatusFailed:
		reason := "processing failed"
		if d.ProcessingError != nil {
			reason = *d.ProcessingError
		}
		return "", fmt.Errorf("%s: %w", reason, ErrNotReady)
	default:
		return "", fmt.Errorf("status is %q: %w", d.Status, ErrNotReady)
	}

	url, ok := d.Variants[purpose]
	if !ok {
		return "", fmt.Errorf("descriptor #%d has no %q variant: %w", id, purpose, ErrNotFound)
	}

	s.cache.SetVariantURL(ctx, id, purpose, url, s.cacheTTL)
	s.cache.SetProfileURL(ctx, d.Owner, purpose, url, s.cacheTTL)
	return url, nil
}
