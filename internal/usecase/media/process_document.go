package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

type documentPipelineSrv struct {
	repo          port.DescriptorRepository
	strg          port.BlobStorage
	optimiser     port.DocumentOptimiser
	cache         port.Cache
	privateBucket string
}

// compile-time check: *documentPipelineSrv must satisfy port.DocumentPipeline
var _ port.DocumentPipeline = (*documentPipelineSrv)(nil)

// NewDocumentPipeline constructs the document-processing worker service.
func NewDocumentPipeline(repo port.DescriptorRepository, strg port.BlobStorage, optimiser port.DocumentOptimiser, cache port.Cache, privateBucket string) port.DocumentPipeline {
	return &documentPipelineSrv{repo: repo, strg: strg, optimiser: optimiser, cache: cache, privateBucket: privateBucket}
}

// ProcessDocument validates the PDF, losslessly optimises it in place and
// marks the descriptor ready. Documents produce no public variants; they
// stay in the private bucket and are served through presigned reads by the
// out-of-scope document layer.
func (s *documentPipelineSrv) ProcessDocument(ctx context.Context, env port.JobEnvelope) error {
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

	reader, err := s.strg.GetFile(ctx, s.privateBucket, d.OriginalBlobName)
	if err != nil {
		return procErr("download_failed", err)
	}
	data, err := io.ReadAll(reader)
	_ = reader.Close()
	if err != nil {
		return procErr("download_failed", err)
	}

	pages, err := s.optimiser.PageCount(data)
	if err != nil {
		return procErr("decode_failed", err)
	}

	if err := s.optimiseInPlace(ctx, d, data); err != nil {
		// optimisation is best-effort; the original stays valid without it
		logger.Warnf(ctx, "document optimisation failed for descriptor #%d: %v", d.ID, err)
	}

	if err := s.repo.SetReady(ctx, d.ID, model.Variants{}, model.ReadyMetadata{}); err != nil {
		return fmt.Errorf("marking descriptor #%d ready: %w", d.ID, err)
	}
	if err := s.cache.InvalidateDescriptor(ctx, d.ID, d.Owner); err != nil {
		logger.Warnf(ctx, "cache invalidation failed for descriptor #%d: %v", d.ID, err)
	}

	logger.Infof(ctx, "descriptor #%d ready (%d page document)", d.ID, pages)
	return nil
}

// optimiseInPlace rewrites the PDF through the optimiser and overwrites the
// private original via a temp key, so a crash mid-write never clobbers it.
func (s *documentPipelineSrv) optimiseInPlace(ctx context.Context, d *model.MediaDescriptor, data []byte) error {
	sc, err := newScratch("document_*")
	if err != nil {
		return err
	}
	defer sc.cleanup(ctx)

	inPath := sc.path("in.pdf")
	outPath := sc.path("out.pdf")
	if err := os.WriteFile(inPath, data, 0o600); err != nil {
		return err
	}
	if err := s.optimiser.OptimiseFile(inPath, outPath); err != nil {
		return err
	}

	f, err := os.Open(outPath)
	if err != nil {
		return err
	}
	defer func(f *os.File) { _ = f.Close() }(f)
	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.Size() == 0 || st.Size() >= int64(len(data)) {
		// nothing gained, keep the original bytes
		return nil
	}

	opts := map[string]string{
		"Content-Type":  d.MimeType,
		"Cache-Control": "no-cache",
	}
	return s.strg.SaveFile(ctx, s.privateBucket, d.OriginalBlobName, f, st.Size(), opts)
}
