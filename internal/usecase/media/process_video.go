package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/mediaid"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type videoPipelineSrv struct {
	repo          port.DescriptorRepository
	strg          port.BlobStorage
	transcoder    port.VideoTranscoder
	transformer   port.ImageTransformer
	cache         port.Cache
	privateBucket string
	publicBucket  string
}

// compile-time check: *videoPipelineSrv must satisfy port.VideoPipeline
var _ port.VideoPipeline = (*videoPipelineSrv)(nil)

// NewVideoPipeline constructs the video-processing worker service.
func NewVideoPipeline(repo port.DescriptorRepository, strg port.BlobStorage, transcoder port.VideoTranscoder, transformer port.ImageTransformer, cache port.Cache, privateBucket, publicBucket string) port.VideoPipeline {
	return &videoPipelineSrv{repo: repo, strg: strg, transcoder: transcoder, transformer: transformer, cache: cache, privateBucket: privateBucket, publicBucket: publicBucket}
}

// ProcessVideo downloads the original into a scratch directory, probes it,
// extracts a poster frame, transcodes the MP4 renditions and marks the
// descriptor ready. Duplicate deliveries are absorbed by the status CAS.
func (s *videoPipelineSrv) ProcessVideo(ctx context.Context, env port.JobEnvelope) error {
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

	sc, err := newScratch("video_*")
	if err != nil {
		return fmt.Errorf("acquiring scratch dir: %w", err)
	}
	defer sc.cleanup(ctx)

	srcPath := sc.path("original" + path.Ext(d.OriginalBlobName))
	if err := s.downloadOriginal(ctx, d, srcPath); err != nil {
		return err
	}

	info, err := s.transcoder.Probe(ctx, srcPath)
	if err != nil {
		return procErr("probe_failed", err)
	}

	meta := model.ReadyMetadata{}
	if info.Width > 0 {
		meta.Width = &info.Width
	}
	if info.Height > 0 {
		meta.Height = &info.Height
	}
	if info.DurationSeconds > 0 {
		meta.Duration = &info.DurationSeconds
	}
	meta.AspectRatio = aspectRatio(info.Width, info.Height)

	variants := model.Variants{}
	s.derivePoster(ctx, d, srcPath, variants)

	landed := 0
	for _, purpose := range s.renditionsFor(info) {
		url, err := s.transcodeAndUpload(ctx, d, sc, srcPath, purpose)
		if err != nil {
			logger.Warnf(ctx, "rendition %q failed for descriptor #%d: %v", purpose, d.ID, err)
			continue
		}
		variants[purpose] = url
		landed++
	}
	if landed == 0 {
		return procErr("transcode_failed", errors.New("no rendition could be produced"))
	}

	if err := s.repo.SetReady(ctx, d.ID, variants, meta); err != nil {
		return fmt.Errorf("marking descriptor #%d ready: %w", d.ID, err)
	}
	if err := s.cache.InvalidateDescriptor(ctx, d.ID, d.Owner); err != nil {
		logger.Warnf(ctx, "cache invalidation failed for descriptor #%d: %v", d.ID, err)
	}

	logger.Infof(ctx, "descriptor #%d ready with %d video variants", d.ID, len(variants))
	return nil
}

func (s *videoPipelineSrv) downloadOriginal(ctx context.Context, d *model.MediaDescriptor, dst string) error {
	reader, err := s.strg.GetFile(ctx, s.privateBucket, d.OriginalBlobName)
	if err != nil {
		return procErr("download_failed", err)
	}
	defer func(r io.ReadSeekCloser) { _ = r.Close() }(reader)

	f, err := os.Create(dst)
	if err != nil {
		return procErr("download_failed", err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		return procErr("download_failed", err)
	}
	return f.Close()
}

// derivePoster extracts the t=0 frame and feeds it through the image
// variant table. variants.poster points at the feed rendition, or full when
// feed could not be produced. Poster failure never fails the job.
func (s *videoPipelineSrv) derivePoster(ctx context.Context, d *model.MediaDescriptor, srcPath string, variants model.Variants) {
	frame, err := s.transcoder.ExtractPosterFrame(ctx, srcPath, PosterMaxWidth, PosterMaxHeight)
	if err != nil {
		logger.Warnf(ctx, "poster extraction failed for descriptor #%d: %v", d.ID, err)
		return
	}

	for _, purpose := range model.ImagePurposes {
		spec := ImageVariantSpecs[purpose]
		out, _, err := s.transformer.RenderVariant(bytes.NewReader(frame), spec)
		if err != nil {
			logger.Warnf(ctx, "poster variant %q failed for descriptor #%d: %v", purpose, d.ID, err)
			continue
		}
		name := mediaid.VariantBlobName(d.MediaType, mediaid.ID(d.MediaUID), purpose, d.Version)
		opts := map[string]string{
			"Content-Type":  "image/webp",
			"Cache-Control": "public, max-age=31536000, immutable",
		}
		if err := s.strg.SaveFile(ctx, s.publicBucket, name, bytes.NewReader(out), int64(len(out)), opts); err != nil {
			logger.Warnf(ctx, "poster variant %q upload failed for descriptor #%d: %v", purpose, d.ID, err)
			continue
		}
		variants[purpose] = s.strg.FileURL(s.publicBucket, name)
	}

	if url, ok := variants[model.PurposeFeed]; ok {
		variants[model.PurposePoster] = url
	} else if url, ok := variants[model.PurposeFull]; ok {
		variants[model.PurposePoster] = url
	}
}

// renditionsFor drops renditions whose target exceeds the source in both
// dimensions, but never drops all of them: a source smaller than every
// target still gets the 480p rendition.
func (s *videoPipelineSrv) renditionsFor(info port.VideoInfo) []model.Purpose {
	var keep []model.Purpose
	for _, purpose := range model.VideoPurposes {
		spec := VideoRenditionSpecs[purpose]
		if info.Width > 0 && info.Height > 0 && info.Width < spec.Width && info.Height < spec.Height {
			continue
		}
		keep = append(keep, purpose)
	}
	if len(keep) == 0 {
		keep = []model.Purpose{model.Purpose480p}
	}
	return keep
}

func (s *videoPipelineSrv) transcodeAndUpload(ctx context.Context, d *model.MediaDescriptor, sc *scratch, srcPath string, purpose model.Purpose) (string, error) {
	spec := VideoRenditionSpecs[purpose]
	dstPath := sc.path(string(purpose) + ".mp4")
	if err := s.transcoder.Transcode(ctx, srcPath, dstPath, spec); err != nil {
		return "", err
	}

	f, err := os.Open(dstPath)
	if err != nil {
		return "", err
	}
	defer func(f *os.File) { _ = f.Close() }(f)
	st, err := f.Stat()
	if err != nil {
		return "", err
	}

	name := mediaid.VariantBlobName(d.MediaType, mediaid.ID(d.MediaUID), purpose, d.Version)
	opts := map[string]string{
		"Content-Type":  "video/mp4",
		"Cache-Control": "public, max-age=31536000, immutable",
	}
	if err := s.strg.SaveFile(ctx, s.publicBucket, name, f, st.Size(), opts); err != nil {
		return "", err
	}
	return s.strg.FileURL(s.publicBucket, name), nil
}
