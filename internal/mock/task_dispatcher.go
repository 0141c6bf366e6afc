package mock

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/port"
)

// Dispatcher implements the task dispatcher interface for tests.
type Dispatcher struct {
	ImageErr    error
	VideoErr    error
	DocumentErr error

	ImageCalled    bool
	VideoCalled    bool
	DocumentCalled bool
	LastEnvelope   port.JobEnvelope
}

func (d *Dispatcher) EnqueueProcessImage(ctx context.Context, env port.JobEnvelope) error {
	d.ImageCalled = true
	d.LastEnvelope = env
	return d.ImageErr
}

func (d *Dispatcher) EnqueueProcessVideo(ctx context.Context, env port.JobEnvelope) error {
	d.VideoCalled = true
	d.LastEnvelope = env
	return d.VideoErr
}

func (d *Dispatcher) EnqueueProcessDocument(ctx context.Context, env port.JobEnvelope) error {
	d.DocumentCalled = true
	d.LastEnvelope = env
	return d.DocumentErr
}
