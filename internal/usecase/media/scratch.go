package media

import (
	"os"
	"path/filepath"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"golang.org/x/net/context"
)

// scratch is a per-job temp directory. Acquire with newScratch, release with
// a deferred cleanup so every exit path, including panics recovered by the
// job server, removes the intermediates.
type scratch struct {
	dir string
}

func newScratch(pattern string) (*scratch, error) {
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return nil, err
	}
	return &scratch{dir: dir}, nil
}

func (s *scratch) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *scratch) cleanup(ctx context.Context) {
	if err := os.RemoveAll(s.dir); err != nil {
		logger.Warnf(ctx, "failed to remove scratch dir %q: %v", s.dir, err)
	}
}
