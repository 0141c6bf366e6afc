package mock

import (
	"context"

	"github.com/linkhive/media-pipeline-go/internal/port"
)

// HTTPRenderer implements the renderer interface for tests.
type HTTPRenderer struct {
	RawOut  []byte
	EtagOut string
	Err     error

	Called bool
	IDIn   int64
}

func (m *HTTPRenderer) RenderGetDescriptor(ctx context.Context, getter port.DescriptorGetter, id int64) ([]byte, string, error) {
	m.Called = true
	m.IDIn = id
	if m.Err != nil {
		return nil, "", m.Err
	}
	return m.RawOut, m.EtagOut, nil
}
