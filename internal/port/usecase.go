package port

import (
	"context"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	"github.com/linkhive/media-pipeline-go/internal/model"
)

// MediaIDGen mints the 96-bit media id baked into blob names.
type MediaIDGen func() mediaid.ID

// UploadIDGen mints the opaque 128-bit upload token of a ticket.
type UploadIDGen func() string

// TicketMinter validates an upload intent and returns a signed upload ticket.
type TicketMinter interface {
	MintUploadTicket(ctx context.Context, in MintTicketInput) (UploadTicket, error)
}
type MintTicketInput struct {
	Owner        string
	MimeType     string
	DeclaredSize int64 // 0 when absent; the completion dispatcher re-checks
}

// UploadTicket is transient; it is never persisted beyond its expiry.
type UploadTicket struct {
	UploadID         string          `json:"upload_id"`
	SignedURL        string          `json:"signed_url"`
	BlobName         string          `json:"blob_name"`
	MediaID          mediaid.ID      `json:"media_id"`
	MediaType        model.MediaType `json:"media_type"`
	MimeType         string          `json:"mime_type"`
	ExpiresAt        time.Time       `json:"expires_at"`
	ExpiresInSeconds int             `json:"expires_in_seconds"`
}

// UploadCompleter verifies an uploaded blob, creates the descriptor and
// enqueues the matching processing job.
type UploadCompleter interface {
	CompleteUpload(ctx context.Context, in CompleteUploadInput) (CompleteUploadOutput, error)
}
type CompleteUploadInput struct {
	Owner        string
	UploadID     string
	BlobName     string
	MediaType    model.MediaType
	MimeType     string
	DeclaredSize int64
}
type CompleteUploadOutput struct {
	DescriptorID int64        `json:"descriptor_id"`
	Status       model.Status `json:"status"`
}

// ImagePipeline processes one claimed image job to ready or failed.
type ImagePipeline interface {
	ProcessImage(ctx context.Context, env JobEnvelope) error
}

// VideoPipeline processes one claimed video job to ready or failed.
type VideoPipeline interface {
	ProcessVideo(ctx context.Context, env JobEnvelope) error
}

// DocumentPipeline processes one claimed document job to ready or failed.
type DocumentPipeline interface {
	ProcessDocument(ctx context.Context, env JobEnvelope) error
}

// DescriptorGetter returns the canonical on-wire descriptor.
type DescriptorGetter interface {
	GetDescriptor(ctx context.Context, id int64) (*GetDescriptorOutput, error)
}
type GetDescriptorOutput struct {
	ValidUntil    time.Time       `json:"valid_until"`
	ID            int64           `json:"id"`
	Owner         string          `json:"owner"`
	MediaType     model.MediaType `json:"media_type"`
	Status        model.Status    `json:"status"`
	MimeType      string          `json:"mime_type"`
	AspectRatio   *float64        `json:"aspect_ratio"`
	DominantColor *string         `json:"dominant_color"`
	Width         *int            `json:"width"`
	Height        *int            `json:"height"`
	Duration      *int            `json:"duration"`
	Variants      model.Variants  `json:"variants"`
	PosterURL     *string         `json:"poster_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// VariantGetter resolves the CDN URL of one variant of a ready descriptor.
type VariantGetter interface {
	GetVariantURL(ctx context.Context, id int64, purpose model.Purpose) (string, error)
}

// StatusGetter reports processing progress for polling clients.
type StatusGetter interface {
	GetStatus(ctx context.Context, id int64) (StatusOutput, error)
}
type StatusOutput struct {
	Status       model.Status `json:"status"`
	Error        *string      `json:"error,omitempty"`
	VariantCount int          `json:"variant_count"`
}

// MediaDeleter removes variant blobs, the original and finally the row.
type MediaDeleter interface {
	DeleteMedia(ctx context.Context, id int64) error
}

// Reingester re-enters processing for a ready or failed descriptor under a
// bumped blob-name version.
type Reingester interface {
	Reingest(ctx context.Context, id int64, owner string) error
}

// PostMediaLister returns the descriptors attached to one post, in insert
// order. The feed layer embeds these directly.
type PostMediaLister interface {
	ListPostMedia(ctx context.Context, postID int64) ([]*model.MediaDescriptor, error)
}
