package task

import (
	"context"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"

	"github.com/hibiken/asynq"
)

// Dispatcher enqueues processing jobs on the Redis-backed bus. Retry
// budgets are attached at enqueue time so a queue's attempt count follows
// the task even across worker restarts.
type Dispatcher struct {
	client        *asynq.Client
	imageAttempts int
	videoAttempts int
}

// compile-time check: *Dispatcher must satisfy port.TaskDispatcher
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string, imageAttempts, videoAttempts int) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c, imageAttempts: imageAttempts, videoAttempts: videoAttempts}
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}

func (d *Dispatcher) EnqueueProcessImage(ctx context.Context, env port.JobEnvelope) error {
	t, err := NewProcessImageTask(env)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, t, QueueImage, d.imageAttempts, ImageTimeout)
}

func (d *Dispatcher) EnqueueProcessVideo(ctx context.Context, env port.JobEnvelope) error {
	t, err := NewProcessVideoTask(env)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, t, QueueVideo, d.videoAttempts, VideoTimeout)
}

func (d *Dispatcher) EnqueueProcessDocument(ctx context.Context, env port.JobEnvelope) error {
	t, err := NewProcessDocumentTask(env)
	if err != nil {
		return err
	}
	return d.enqueue(ctx, t, QueueDocument, d.imageAttempts, DocumentTimeout)
}

func (d *Dispatcher) enqueue(ctx context.Context, t *asynq.Task, queue string, attempts int, timeout time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	info, err := d.client.EnqueueContext(ctx, t,
		asynq.Queue(queue),
		// asynq counts retries after the first delivery
		asynq.MaxRetry(attempts-1),
		asynq.Timeout(timeout),
		asynq.Retention(completedRetention),
	)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "enqueued task %q on queue %q with id %q", t.Type(), queue, info.ID)
	return nil
}
