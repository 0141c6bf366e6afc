package mock

import (
	"context"
	"io"
	"os"

	"github.com/linkhive/media-pipeline-go/internal/port"
)

// ImageTransformer implements the image operations for tests.
type ImageTransformer struct {
	ProbeOut    port.ImageInfo
	ColorOut    string
	VariantOut  []byte
	VariantInfo port.ImageInfo

	ProbeErr   error
	ColorErr   error
	VariantErr error
	// VariantErrPerSpec fails only the specs whose width matches a key.
	VariantErrPerSpec map[int]error

	ProbeCalled   bool
	ColorCalled   bool
	RenderedSpecs []port.VariantSpec
}

func (t *ImageTransformer) Probe(r io.Reader) (port.ImageInfo, error) {
	t.ProbeCalled = true
	if t.ProbeErr != nil {
		return port.ImageInfo{}, t.ProbeErr
	}
	return t.ProbeOut, nil
}

func (t *ImageTransformer) DominantColor(r io.Reader) (string, error) {
	t.ColorCalled = true
	if t.ColorErr != nil {
		return "", t.ColorErr
	}
	return t.ColorOut, nil
}

func (t *ImageTransformer) RenderVariant(r io.Reader, spec port.VariantSpec) ([]byte, port.ImageInfo, error) {
	t.RenderedSpecs = append(t.RenderedSpecs, spec)
	if err, ok := t.VariantErrPerSpec[spec.Width]; ok {
		return nil, port.ImageInfo{}, err
	}
	if t.VariantErr != nil {
		return nil, port.ImageInfo{}, t.VariantErr
	}
	out := t.VariantOut
	if out == nil {
		out = []byte("webp-bytes")
	}
	return out, t.VariantInfo, nil
}

// VideoTranscoder implements the video operations for tests.
type VideoTranscoder struct {
	ProbeOut  port.VideoInfo
	PosterOut []byte

	ProbeErr     error
	PosterErr    error
	TranscodeErr error
	// TranscodeErrPerWidth fails only the renditions whose width matches.
	TranscodeErrPerWidth map[int]error

	ProbeCalled     bool
	PosterCalled    bool
	TranscodedSpecs []port.RenditionSpec
}

func (t *VideoTranscoder) Probe(ctx context.Context, srcPath string) (port.VideoInfo, error) {
	t.ProbeCalled = true
	if t.ProbeErr != nil {
		return port.VideoInfo{}, t.ProbeErr
	}
	return t.ProbeOut, nil
}

func (t *VideoTranscoder) ExtractPosterFrame(ctx context.Context, srcPath string, maxW, maxH int) ([]byte, error) {
	t.PosterCalled = true
	if t.PosterErr != nil {
		return nil, t.PosterErr
	}
	if t.PosterOut != nil {
		return t.PosterOut, nil
	}
	return []byte("poster-frame"), nil
}

func (t *VideoTranscoder) Transcode(ctx context.Context, srcPath, dstPath string, spec port.RenditionSpec) error {
	t.TranscodedSpecs = append(t.TranscodedSpecs, spec)
	if err, ok := t.TranscodeErrPerWidth[spec.Width]; ok {
		return err
	}
	if t.TranscodeErr != nil {
		return t.TranscodeErr
	}
	// leave a non-empty rendition behind for the upload step
	return os.WriteFile(dstPath, []byte("mp4-bytes"), 0o600)
}

// DocumentOptimiser implements the document operations for tests.
type DocumentOptimiser struct {
	PageCountOut int
	PageCountErr error
	OptimiseErr  error

	PageCountCalled bool
	OptimiseCalled  bool
}

func (o *DocumentOptimiser) PageCount(data []byte) (int, error) {
	o.PageCountCalled = true
	if o.PageCountErr != nil {
		return 0, o.PageCountErr
	}
	return o.PageCountOut, nil
}

func (o *DocumentOptimiser) OptimiseFile(inPath, outPath string) error {
	o.OptimiseCalled = true
	if o.OptimiseErr != nil {
		return o.OptimiseErr
	}
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o600)
}
