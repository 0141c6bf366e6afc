package media

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type descriptorGetterSrv struct {
	repo     port.DescriptorRepository
	cacheTTL time.Duration
}

// compile-time check: *descriptorGetterSrv must satisfy port.DescriptorGetter
var _ port.DescriptorGetter = (*descriptorGetterSrv)(nil)

// NewDescriptorGetter constructs the descriptor read use case. cacheTTL
// bounds how long a rendered snapshot stays authoritative.
func NewDescriptorGetter(repo port.DescriptorRepository, cacheTTL time.Duration) port.DescriptorGetter {
	return &descriptorGetterSrv{repo: repo, cacheTTL: cacheTTL}
}

func (s *descriptorGetterSrv) GetDescriptor(ctx context.Context, id int64) (*port.GetDescriptorOutput, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	out := &port.GetDescriptorOutput{
		ValidUntil:    time.Now().UTC().Add(s.cacheTTL),
		ID:            d.ID,
		Owner:         d.Owner,
		MediaType:     d.MediaType,
		Status:        d.Status,
		MimeType:      d.MimeType,
		AspectRatio:   d.AspectRatio,
		DominantColor: d.DominantColor,
		Width:         d.Width,
		Height:        d.Height,
		Duration:      d.Duration,
		Variants:      d.Variants,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if url, ok := d.Variants[model.PurposePoster]; ok {
		out.PosterURL = &url
	}
	return out, nil
}
