package media

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type postMediaListerSrv struct {
	repo port.DescriptorRepository
}

// compile-time check: *postMediaListerSrv must satisfy port.PostMediaLister
var _ port.PostMediaLister = (*postMediaListerSrv)(nil)

// NewPostMediaLister constructs a PostMediaLister implementation.
func NewPostMediaLister(repo port.DescriptorRepository) port.PostMediaLister {
	return &postMediaListerSrv{repo: repo}
}

func (s *postMediaListerSrv) ListPostMedia(ctx context.Context, postID int64) ([]*model.MediaDescriptor, error) {
	return s.repo.GetByPost(ctx, postID)
}
