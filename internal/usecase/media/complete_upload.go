package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type uploadCompleterSrv struct {
	repo          port.DescriptorRepository
	strg          port.BlobStorage
	dispatcher    port.TaskDispatcher
	privateBucket string
	limits        Limits
}

// compile-time check: *uploadCompleterSrv must satisfy port.UploadCompleter
var _ port.UploadCompleter = (*uploadCompleterSrv)(nil)

// NewUploadCompleter constructs the completion dispatcher.
func NewUploadCompleter(repo port.DescriptorRepository, strg port.BlobStorage, dispatcher port.TaskDispatcher, privateBucket string, limits Limits) port.UploadCompleter {
	return &uploadCompleterSrv{repo: repo, strg: strg, dispatcher: dispatcher, privateBucket: privateBucket, limits: limits}
}

// CompleteUpload verifies the uploaded blob, creates the descriptor in
// uploaded state and enqueues the processing job. Idempotent on
// (owner, blob_name): a duplicate call returns the existing descriptor and
// does not enqueue a second job.
func (s *uploadCompleterSrv) CompleteUpload(ctx context.Context, in port.CompleteUploadInput) (port.CompleteUploadOutput, error) {
	nameType, uid, version, _, err := mediaid.ParseOriginalBlobName(in.BlobName)
	if err != nil {
		return port.CompleteUploadOutput{}, fmt.Errorf("%w: %v", ErrNotUploaded, err)
	}
	if nameType != in.MediaType {
		return port.CompleteUploadOutput{}, fmt.Errorf("blob name %q does not match media type %q: %w", in.BlobName, in.MediaType, ErrNotUploaded)
	}

	if existing, err := s.repo.GetByBlobName(ctx, in.Owner, in.BlobName); err == nil {
		logger.Infof(ctx, "upload of %q already completed as descriptor #%d", in.BlobName, existing.ID)
		return port.CompleteUploadOutput{DescriptorID: existing.ID, Status: existing.Status}, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return port.CompleteUploadOutput{}, err
	}

	exists, err := s.strg.FileExists(ctx, s.privateBucket, in.BlobName)
	if err != nil {
		return port.CompleteUploadOutput{}, fmt.Errorf("checking blob %q: %w", in.BlobName, err)
	}
	if !exists {
		return port.CompleteUploadOutput{}, fmt.Errorf("blob %q: %w", in.BlobName, ErrNotUploaded)
	}

	info, err := s.strg.StatFile(ctx, s.privateBucket, in.BlobName)
	if err != nil {
		return port.CompleteUploadOutput{}, fmt.Errorf("stats for blob %q: %w", in.BlobName, err)
	}
	if limit := s.limits.Cap(in.MediaType); info.SizeBytes > limit {
		// the oversized blob never becomes a descriptor; remove it right away
		if rmErr := s.strg.RemoveFile(ctx, s.privateBucket, in.BlobName); rmErr != nil {
			logger.Warnf(ctx, "failed to remove oversized blob %q: %v", in.BlobName, rmErr)
		}
		return port.CompleteUploadOutput{}, fmt.Errorf("blob %q is %d bytes (cap %d): %w", in.BlobName, info.SizeBytes, limit, ErrTooLarge)
	}

	d := &model.MediaDescriptor{
		Owner:            in.Owner,
		MediaType:        in.MediaType,
		MimeType:         in.MimeType,
		MediaUID:         uid.String(),
		Version:          version,
		OriginalBlobName: in.BlobName,
		Status:           model.StatusPending,
		Variants:         model.Variants{},
	}
	if err := s.repo.InsertPending(ctx, d); err != nil {
		if errors.Is(err, ErrConflict) {
			// lost the race against a concurrent completion of the same blob
			if existing, gErr := s.repo.GetByBlobName(ctx, in.Owner, in.BlobName); gErr == nil {
				return port.CompleteUploadOutput{DescriptorID: existing.ID, Status: existing.Status}, nil
			}
		}
		return port.CompleteUploadOutput{}, fmt.Errorf("inserting descriptor for %q: %w", in.BlobName, err)
	}
	if err := s.repo.Transition(ctx, d.ID, []model.Status{model.StatusPending}, model.StatusUploaded); err != nil {
		return port.CompleteUploadOutput{}, fmt.Errorf("marking descriptor #%d uploaded: %w", d.ID, err)
	}

	env := port.JobEnvelope{
		MediaID:      uid.String(),
		BlobName:     in.BlobName,
		DescriptorID: d.ID,
		Attempt:      1,
		EnqueuedAt:   time.Now().UTC(),
	}
	if err := s.enqueue(ctx, in.MediaType, env); err != nil {
		// never leave a stuck uploaded row behind
		if fErr := s.repo.SetFailed(ctx, d.ID, []model.Status{model.StatusUploaded}, "enqueue_failed"); fErr != nil {
			logger.Errorf(ctx, "failed to mark descriptor #%d as failed after enqueue error: %v", d.ID, fErr)
		}
		return port.CompleteUploadOutput{}, fmt.Errorf("enqueueing processing job for descriptor #%d: %w", d.ID, err)
	}

	logger.Infof(ctx, "completed upload of %q as descriptor #%d", in.BlobName, d.ID)
	return port.CompleteUploadOutput{DescriptorID: d.ID, Status: model.StatusUploaded}, nil
}

func (s *uploadCompleterSrv) enqueue(ctx context.Context, mt model.MediaType, env port.JobEnvelope) error {
	switch mt {
	case model.MediaTypeVideo:
		return s.dispatcher.EnqueueProcessVideo(ctx, env)
	case model.MediaTypeDocument:
		return s.dispatcher.EnqueueProcessDocument(ctx, env)
	default:
		return s.dispatcher.EnqueueProcessImage(ctx, env)
	}
}
