package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type imagePipelineSrv struct {
	repo          port.DescriptorRepository
	strg          port.BlobStorage
	transformer   port.ImageTransformer
	cache         port.Cache
	privateBucket string
	publicBucket  string
}

// compile-time check: *imagePipelineSrv must satisfy port.ImagePipeline
var _ port.ImagePipeline = (*imagePipelineSrv)(nil)

// NewImagePipeline constructs the image-processing worker service.
func NewImagePipeline(repo port.DescriptorRepository, strg port.BlobStorage, transformer port.ImageTransformer, cache port.Cache, privateBucket, publicBucket string) port.ImagePipeline {
	return &imagePipelineSrv{repo: repo, strg: strg, transformer: transformer, cache: cache, privateBucket: privateBucket, publicBucket: publicBucket}
}

// ProcessImage downloads the original, probes it, derives the WebP variants
// and marks the descriptor ready. Safe against duplicate delivery: the
// status CAS gates re-entry.
func (s *imagePipelineSrv) ProcessImage(ctx context.Context, env port.JobEnvelope) error {
	err := s.repo.Transition(ctx, env.DescriptorID, []model.Status{model.StatusUploaded, model.StatusFailed}, model.StatusProcessing)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			d, gErr := s.repo.GetByID(ctx, env.DescriptorID)
			if gErr == nil && (d.Status == model.StatusProcessing || d.Status == model.StatusReady) {
				logger.Infof(ctx, "descriptor #%d already %s, acking duplicate delivery", env.DescriptorID, d.Status)
				return nil
			}
		}
		return fmt.Errorf("claiming descriptor #%d: %w", env.DescriptorID, err)
	}

	d, err := s.repo.GetByID(ctx, env.DescriptorID)
	if err != nil {
		return fmt.Errorf("loading descriptor #%d: %w", env.DescriptorID, err)
	}

	variants, meta, err := s.deriveVariants(ctx, d)
	if err != nil {
		return err
	}

	if err := s.repo.SetReady(ctx, d.ID, variants, meta); err != nil {
		return fmt.Errorf("marking descriptor #%d ready: %w", d.ID, err)
	}
	if err := s.cache.InvalidateDescriptor(ctx, d.ID, d.Owner); err != nil {
		logger.Warnf(ctx, "cache invalidation failed for descriptor #%d: %v", d.ID, err)
	}

	logger.Infof(ctx, "descriptor #%d ready with %d image variants", d.ID, len(variants))
	return nil
}

func (s *imagePipelineSrv) deriveVariants(ctx context.Context, d *model.MediaDescriptor) (model.Variants, model.ReadyMetadata, error) {
	reader, err := s.strg.GetFile(ctx, s.privateBucket, d.OriginalBlobName)
	if err != nil {
		return nil, model.ReadyMetadata{}, procErr("download_failed", err)
	}
	defer func(r io.ReadSeekCloser) { _ = r.Close() }(reader)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, model.ReadyMetadata{}, procErr("download_failed", err)
	}

	info, err := s.transformer.Probe(bytes.NewReader(data))
	if err != nil {
		return nil, model.ReadyMetadata{}, procErr("decode_failed", err)
	}

	meta := model.ReadyMetadata{}
	if info.Width > 0 {
		meta.Width = &info.Width
	}
	if info.Height > 0 {
		meta.Height = &info.Height
	}
	if ratio := aspectRatio(info.Width, info.Height); ratio != nil {
		meta.AspectRatio = ratio
	}

	if color, err := s.transformer.DominantColor(bytes.NewReader(data)); err != nil {
		logger.Warnf(ctx, "dominant colour extraction failed for descriptor #%d: %v", d.ID, err)
	} else {
		meta.DominantColor = &color
	}

	variants := model.Variants{}
	for _, purpose := range model.ImagePurposes {
		url, err := s.renderAndUpload(ctx, d, data, purpose)
		if err != nil {
			// one failed variant never fails the whole job
			logger.Warnf(ctx, "variant %q failed for descriptor #%d: %v", purpose, d.ID, err)
			continue
		}
		variants[purpose] = url
	}
	if len(variants) == 0 {
		return nil, model.ReadyMetadata{}, procErr("zero_variants", errors.New("no image variant could be produced"))
	}

	return variants, meta, nil
}

func (s *imagePipelineSrv) renderAndUpload(ctx context.Context, d *model.MediaDescriptor, data []byte, purpose model.Purpose) (string, error) {
	spec := ImageVariantSpecs[purpose]
	out, _, err := s.transformer.RenderVariant(bytes.NewReader(data), spec)
	if err != nil {
		return "", err
	}

	name := mediaid.VariantBlobName(d.MediaType, mediaid.ID(d.MediaUID), purpose, d.Version)
	opts := map[string]string{
		"Content-Type":  "image/webp",
		"Cache-Control": "public, max-age=31536000, immutable",
	}
	if err := s.strg.SaveFile(ctx, s.publicBucket, name, bytes.NewReader(out), int64(len(out)), opts); err != nil {
		return "", err
	}
	return s.strg.FileURL(s.publicBucket, name), nil
}

// aspectRatio returns width/height, or nil when either dimension is zero,
// negative, or the quotient is not strictly positive and finite.
func aspectRatio(width, height int) *float64 {
	if width <= 0 || height <= 0 {
		return nil
	}
	r := float64(width) / float64(height)
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return nil
	}
	return &r
}
