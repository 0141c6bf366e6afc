package media

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

// FailureMarker records the terminal failure of a processing job once its
// attempt budget is exhausted. Worker handlers call it on the last attempt
// so that no job ever crosses the job boundary without updating the
// descriptor.
type FailureMarker struct {
	repo  port.DescriptorRepository
	cache port.Cache
}

// NewFailureMarker constructs a FailureMarker.
func NewFailureMarker(repo port.DescriptorRepository, cache port.Cache) *FailureMarker {
	return &FailureMarker{repo: repo, cache: cache}
}

// MarkFailed transitions the descriptor to failed with a short stable code.
// Losing the CAS means another worker already finished the cycle; that is
// not an error.
func (m *FailureMarker) MarkFailed(ctx context.Context, descriptorID int64, code string) {
	err := m.repo.SetFailed(ctx, descriptorID, []model.Status{model.StatusProcessing, model.StatusUploaded}, code)
	if err != nil {
		logger.Warnf(ctx, "could not mark descriptor #%d failed (%s): %v", descriptorID, code, err)
		return
	}

	d, err := m.repo.GetByID(ctx, descriptorID)
	if err == nil {
		if cErr := m.cache.InvalidateDescriptor(ctx, d.ID, d.Owner); cErr != nil {
			logger.Warnf(ctx, "cache invalidation failed for descriptor #%d: %v", d.ID, cErr)
		}
	}
	logger.Errorf(ctx, "descriptor #%d failed terminally: %s", descriptorID, code)
}
