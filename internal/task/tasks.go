package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/port"

	"github.com/hibiken/asynq"
)

const (
	TypeProcessImage    = "media:process_image"
	TypeProcessVideo    = "media:process_video"
	TypeProcessDocument = "media:process_document"
)

// Queue names. Each media type gets its own queue so concurrency and retry
// budgets can differ without jobs of one type starving the other.
const (
	QueueImage    = "image-processing"
	QueueVideo    = "video-processing"
	QueueDocument = "document-processing"
)

// Per-queue exponential backoff bases.
const (
	ImageBackoffBase    = 2 * time.Second
	VideoBackoffBase    = 10 * time.Second
	DocumentBackoffBase = 2 * time.Second
)

// Per-task visibility timeouts. A handler exceeding its timeout is retried
// as if it had crashed, so these are deliberately generous.
const (
	ImageTimeout    = 2 * time.Minute
	VideoTimeout    = 10 * time.Minute
	DocumentTimeout = 2 * time.Minute
)

// completedRetention keeps finished tasks inspectable in the asynq UI.
const completedRetention = 24 * time.Hour

// NewProcessImageTask creates an Asynq task for running the image pipeline
// on one uploaded original.
func NewProcessImageTask(env port.JobEnvelope) (*asynq.Task, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-image payload: %w", err)
	}
	return asynq.NewTask(TypeProcessImage, data), nil
}

// NewProcessVideoTask creates an Asynq task for running the video pipeline
// on one uploaded original.
func NewProcessVideoTask(env port.JobEnvelope) (*asynq.Task, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-video payload: %w", err)
	}
	return asynq.NewTask(TypeProcessVideo, data), nil
}

// NewProcessDocumentTask creates an Asynq task for optimising one uploaded
// document.
func NewProcessDocumentTask(env port.JobEnvelope) (*asynq.Task, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-document payload: %w", err)
	}
	return asynq.NewTask(TypeProcessDocument, data), nil
}

// ParseJobEnvelope parses any processing task payload back to its envelope.
func ParseJobEnvelope(t *asynq.Task) (port.JobEnvelope, error) {
	var env port.JobEnvelope
	if err := json.Unmarshal(t.Payload(), &env); err != nil {
		return port.JobEnvelope{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return env, nil
}

// RetryDelay is the exponential backoff shared by the worker server:
// base * 2^(n-1), so retry 1 waits one base, retry 2 two, retry 3 four.
func RetryDelay(n int, _ error, t *asynq.Task) time.Duration {
	base := ImageBackoffBase
	switch t.Type() {
	case TypeProcessVideo:
		base = VideoBackoffBase
	case TypeProcessDocument:
		base = DocumentBackoffBase
	}
	if n < 1 {
		n = 1
	}
	return base << (n - 1)
}
