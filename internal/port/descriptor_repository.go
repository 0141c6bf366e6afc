package port

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/model"
)

// DescriptorRepository defines persistence operations for media descriptors.
// Status is only ever written through Transition or one of its specialised
// forms (SetReady, SetFailed, Reingest), all of which compare-and-set on the
// current status and fail with media.ErrConflict when the CAS loses.
type DescriptorRepository interface {
	InsertPending(ctx context.Context, d *model.MediaDescriptor) error
	// Transition moves the descriptor from any of the from statuses to the
	// to status. Exactly one concurrent caller wins.
	Transition(ctx context.Context, id int64, from []model.Status, to model.Status) error
	// SetReady is a transition from processing that atomically writes the
	// variants map and the probe metadata together with status = ready.
	SetReady(ctx context.Context, id int64, variants model.Variants, meta model.ReadyMetadata) error
	// SetFailed is a transition to failed that records a short stable error
	// code. The from set is supplied by the caller: pipelines fail from
	// processing, the completion dispatcher fails from uploaded.
	SetFailed(ctx context.Context, id int64, from []model.Status, reason string) error
	// Reingest bumps the blob-name version and re-enters processing from
	// ready or failed.
	Reingest(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.MediaDescriptor, error)
	GetByBlobName(ctx context.Context, owner, blobName string) (*model.MediaDescriptor, error)
	GetByPost(ctx context.Context, postID int64) ([]*model.MediaDescriptor, error)
	Delete(ctx context.Context, id int64) error
}
