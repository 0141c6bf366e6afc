package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/mock"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

func TestRenderGetDescriptor_CacheHit(t *testing.T) {
	c := &mock.Cache{
		DescriptorOut: []byte(`{"id":42}`),
		EtagOut:       `"cafef00d"`,
	}
	getter := &mock.DescriptorGetter{}
	r := NewHTTPRenderer(c)

	raw, etag, err := r.RenderGetDescriptor(context.Background(), getter, 42)
	if err != nil {
		t.Fatalf("RenderGetDescriptor: %v", err)
	}
	if string(raw) != `{"id":42}` || etag != `"cafef00d"` {
		t.Errorf("got (%s, %s); want cached values", raw, etag)
	}
	if getter.Called {
		t.Error("use case should not run on a cache hit")
	}
}

func TestRenderGetDescriptor_CacheMiss(t *testing.T) {
	c := &mock.Cache{}
	out := &port.GetDescriptorOutput{
		ValidUntil: time.Now().Add(time.Hour),
		ID:         42,
		Owner:      "alice",
		MediaType:  model.MediaTypeImage,
		Status:     model.StatusReady,
	}
	getter := &mock.DescriptorGetter{Out: out}
	r := NewHTTPRenderer(c)

	raw, etag, err := r.RenderGetDescriptor(context.Background(), getter, 42)
	if err != nil {
		t.Fatalf("RenderGetDescriptor: %v", err)
	}
	if !getter.Called {
		t.Fatal("use case should run on a cache miss")
	}

	want, _ := json.Marshal(out)
	if string(raw) != string(want) {
		t.Errorf("raw = %s; want %s", raw, want)
	}
	wantEtag := fmt.Sprintf("%q", fmt.Sprintf("%08x", crc32.ChecksumIEEE(want)))
	if etag != wantEtag {
		t.Errorf("etag = %s; want %s", etag, wantEtag)
	}
	if !c.SetDescriptorCalled || !c.SetEtagCalled {
		t.Error("both cache entries should be written on a miss")
	}
}

func TestRenderGetDescriptor_CacheErrorFallsThrough(t *testing.T) {
	c := &mock.Cache{GetDescriptorErr: errors.New("redis down")}
	getter := &mock.DescriptorGetter{Out: &port.GetDescriptorOutput{ValidUntil: time.Now().Add(time.Hour), ID: 42}}
	r := NewHTTPRenderer(c)

	raw, _, err := r.RenderGetDescriptor(context.Background(), getter, 42)
	if err != nil {
		t.Fatalf("a cache outage must not fail the request: %v", err)
	}
	if raw == nil || !getter.Called {
		t.Error("expected fallthrough to the use case")
	}
}

func TestRenderGetDescriptor_UseCaseError(t *testing.T) {
	c := &mock.Cache{}
	getter := &mock.DescriptorGetter{Err: errors.New("boom")}
	r := NewHTTPRenderer(c)

	if _, _, err := r.RenderGetDescriptor(context.Background(), getter, 42); err == nil {
		t.Error("expected use case error to propagate")
	}
}
