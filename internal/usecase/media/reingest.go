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

type reingesterSrv struct {
	repo       port.DescriptorRepository
	dispatcher port.TaskDispatcher
	cache      port.Cache
}

// compile-time check: *reingesterSrv must satisfy port.Reingester
var _ port.Reingester = (*reingesterSrv)(nil)

// NewReingester constructs the explicit re-ingest use case.
func NewReingester(repo port.DescriptorRepository, dispatcher port.TaskDispatcher, cache port.Cache) port.Reingester {
	return &reingesterSrv{repo: repo, dispatcher: dispatcher, cache: cache}
}

// Reingest reprocesses the stored original of a ready or failed descriptor
// under a bumped variant version. Only the owner may trigger it. The row
// re-enters the lifecycle at uploaded so the worker claims it through the
// same CAS as a fresh upload.
func (s *reingesterSrv) Reingest(ctx context.Context, id int64, owner string) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// empty owner means the caller is privileged (admin or auth disabled)
	if owner != "" && d.Owner != owner {
		return fmt.Errorf("descriptor #%d is not owned by %q: %w", id, owner, ErrUnauthorized)
	}

	if err := s.repo.Reingest(ctx, id); err != nil {
		return err
	}

	env := port.JobEnvelope{
		MediaID:      d.MediaUID,
		BlobName:     d.OriginalBlobName,
		DescriptorID: d.ID,
		Attempt:      1,
		EnqueuedAt:   time.Now().UTC(),
	}
	switch d.MediaType {
	case model.MediaTypeVideo:
		err = s.dispatcher.EnqueueProcessVideo(ctx, env)
	case model.MediaTypeDocument:
		err = s.dispatcher.EnqueueProcessDocument(ctx, env)
	default:
		err = s.dispatcher.EnqueueProcessImage(ctx, env)
	}
	if err != nil {
		if fErr := s.repo.SetFailed(ctx, d.ID, []model.Status{model.StatusUploaded}, "enqueue_failed"); fErr != nil {
			logger.Errorf(ctx, "failed to mark descriptor #%d as failed after enqueue error: %v", d.ID, fErr)
		}
		return fmt.Errorf("enqueueing re-ingest job for descriptor #%d: %w", d.ID, err)
	}

	if err := s.cache.InvalidateDescriptor(ctx, d.ID, d.Owner); err != nil {
		logger.Warnf(ctx, "cache invalidation failed for descriptor #%d: %v", d.ID, err)
	}

	logger.Infof(ctx, "re-ingest enqueued for descriptor #%d", d.ID)
	return nil
}
