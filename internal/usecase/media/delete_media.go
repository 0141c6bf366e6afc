package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type deleteMediaSrv struct {
	repo          port.DescriptorRepository
	cache         port.Cache
	strg          port.BlobStorage
	privateBucket string
	publicBucket  string
}

// compile-time check: *deleteMediaSrv must satisfy port.MediaDeleter
var _ port.MediaDeleter = (*deleteMediaSrv)(nil)

// NewMediaDeleter constructs a MediaDeleter implementation.
func NewMediaDeleter(repo port.DescriptorRepository, cache port.Cache, strg port.BlobStorage, privateBucket, publicBucket string) port.MediaDeleter {
	return &deleteMediaSrv{repo: repo, cache: cache, strg: strg, privateBucket: privateBucket, publicBucket: publicBucket}
}

// DeleteMedia removes every variant blob, then the original, then the row,
// then clears the cache. The row is never deleted while a variant blob still
// exists, so a mid-delete crash leaves a retryable descriptor, not an orphan
// blob. Variant blobs are swept by media-id prefix rather than from the
// variants column: a re-ingest bumps the version and the prior version's
// blobs would otherwise survive the row.
func (s *deleteMediaSrv) DeleteMedia(ctx context.Context, id int64) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	prefix := mediaid.BlobPrefix(d.MediaType, mediaid.ID(d.MediaUID))
	names, err := s.strg.ListFiles(ctx, s.publicBucket, prefix, 0)
	if err != nil {
		return fmt.Errorf("listing variant blobs under %q: %w", prefix, err)
	}
	for _, name := range names {
		if err := s.strg.RemoveFile(ctx, s.publicBucket, name); err != nil && !errors.Is(err, ErrObjectNotFound) {
			return fmt.Errorf("removing variant blob %q: %w", name, err)
		}
	}

	if err := s.strg.RemoveFile(ctx, s.privateBucket, d.OriginalBlobName); err != nil && !errors.Is(err, ErrObjectNotFound) {
		return fmt.Errorf("removing original blob %q: %w", d.OriginalBlobName, err)
	}

	if err := s.repo.Delete(ctx, d.ID); err != nil {
		return err
	}

	if err := s.cache.InvalidateDescriptor(ctx, d.ID, d.Owner); err != nil {
		logger.Warnf(ctx, "failed invalidating cache for descriptor #%d: %v", d.ID, err)
	}

	logger.Infof(ctx, "deleted descriptor #%d and its blobs", d.ID)
	return nil
}
