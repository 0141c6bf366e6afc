package worker

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"
)

// ProcessDocumentHandler handles a process-document task.
func ProcessDocumentHandler(ctx context.Context, env port.JobEnvelope, svc port.DocumentPipeline, marker *media.FailureMarker, lastAttempt bool) error {
	if err := svc.ProcessDocument(ctx, env); err != nil {
		logger.Errorf(ctx, "❌  Failed to process document #%s: %v", env.MediaID, err)
		if lastAttempt {
			marker.MarkFailed(ctx, env.DescriptorID, media.FailureCode(err))
		}
		return err
	}

	logger.Infof(ctx, "✅  Successfully processed document #%s", env.MediaID)
	return nil
}
