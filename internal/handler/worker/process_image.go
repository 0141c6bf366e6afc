package worker

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

// ProcessImageHandler handles a process-image task. lastAttempt is true when
// the retry budget is exhausted: the failure is then recorded on the
// descriptor before the job leaves the queue for good.
func ProcessImageHandler(ctx context.Context, env port.JobEnvelope, svc port.ImagePipeline, marker *media.FailureMarker, lastAttempt bool) error {
	if err := svc.ProcessImage(ctx, env); err != nil {
		logger.Errorf(ctx, "❌  Failed to process image #%s: %v", env.MediaID, err)
		if lastAttempt {
			marker.MarkFailed(ctx, env.DescriptorID, media.FailureCode(err))
		}
		return err
	}

	logger.Infof(ctx, "✅  Successfully processed image #%s", env.MediaID)
	return nil
}
