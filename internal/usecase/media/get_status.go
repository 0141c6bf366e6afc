package media

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linkhive/media-pipeline-go/internal/port"
)

type statusGetterSrv struct {
	repo port.DescriptorRepository
}

// compile-time check: *statusGetterSrv must satisfy port.StatusGetter
var _ port.StatusGetter = (*statusGetterSrv)(nil)

// NewStatusGetter constructs the processing-status read use case.
func NewStatusGetter(repo port.DescriptorRepository) port.StatusGetter {
	return &statusGetterSrv{repo: repo}
}

func (s *statusGetterSrv) GetStatus(ctx context.Context, id int64) (port.StatusOutput, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.StatusOutput{}, ErrNotFound
		}
		return port.StatusOutput{}, err
	}
	return port.StatusOutput{
		Status:       d.Status,
		Error:        d.ProcessingError,
		VariantCount: len(d.Variants),
	}, nil
}
