package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/port"
)

type httpRenderer struct {
	cache port.Cache
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) port.HTTPRenderer {
	return &httpRenderer{cache: cache}
}

// RenderGetDescriptor fetches the descriptor either from cache or from the
// wrapped use case. It returns the JSON encoded output and a quoted ETag
// string.
func (r *httpRenderer) RenderGetDescriptor(ctx context.Context, getter port.DescriptorGetter, id int64) ([]byte, string, error) {
	raw, err := r.cache.GetDescriptor(ctx, id)
	etag, errEtag := r.cache.GetEtagDescriptor(ctx, id)
	if err == nil && errEtag == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	out, err := getter.GetDescriptor(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(out)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	ttl := time.Until(out.ValidUntil)
	r.cache.SetDescriptor(ctx, id, raw, ttl)
	r.cache.SetEtagDescriptor(ctx, id, etag, ttl)

	return raw, etag, nil
}
