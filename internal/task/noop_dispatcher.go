package task

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/port"
)

// NoopDispatcher is used when no Redis address is configured; uploads are
// accepted but never progress past uploaded.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueProcessImage(ctx context.Context, env port.JobEnvelope) error {
	return nil
}

func (d *NoopDispatcher) EnqueueProcessVideo(ctx context.Context, env port.JobEnvelope) error {
	return nil
}

func (d *NoopDispatcher) EnqueueProcessDocument(ctx context.Context, env port.JobEnvelope) error {
	return nil
}
