package port

import (
	"context"
	"time"
)

// JobEnvelope is the payload carried by every processing job. The bus-side
// job id is opaque and owned by the queue.
type JobEnvelope struct {
	MediaID      string    `json:"media_id"`
	BlobName     string    `json:"blob_name"`
	DescriptorID int64     `json:"descriptor_id"`
	Attempt      int       `json:"attempt"`
	EnqueuedAt   time.Time `json:"enqueued_at"`
}

// TaskDispatcher enqueues asynchronous media processing jobs on their
// dedicated queues. Delivery is at-least-once; handlers dedup via the
// descriptor status CAS.
type TaskDispatcher interface {
	EnqueueProcessImage(ctx context.Context, env JobEnvelope) error
	EnqueueProcessVideo(ctx context.Context, env JobEnvelope) error
	EnqueueProcessDocument(ctx context.Context, env JobEnvelope) error
}
