package worker

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

// ProcessVideoHandler handles a process-video task.
func ProcessVideoHandler(ctx context.Context, env port.JobEnvelope, svc port.VideoPipeline, marker *media.FailureMarker, lastAttempt bool) error {
	if err := svc.ProcessVideo(ctx, env); err != nil {
		logger.Errorf(ctx, "❌  Failed to process video #%s: %v", env.MediaID, err)
		if lastAttempt {
			marker.MarkFailed(ctx, env.DescriptorID, media.FailureCode(err))
		}
		return err
	}

	logger.Infof(ctx, "✅  Successfully processed video #%s", env.MediaID)
	return nil
}
