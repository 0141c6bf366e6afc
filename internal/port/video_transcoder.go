package port

import "context"

// VideoInfo is the result of probing a video container.
type VideoInfo struct {
	DurationSeconds int
	Width           int
	Height          int
	Codec           string
	BitrateKbps     int
	HasAudio        bool
}

// RenditionSpec describes one transcoded MP4 output.
type RenditionSpec struct {
	Width           int
	Height          int
	VideoBitrateKbps int
	CRF             int
	Preset          string
}

// VideoTranscoder defines the video operations of the pipeline. All calls
// operate on scratch-directory paths; the caller owns the scratch lifetime.
type VideoTranscoder interface {
	Probe(ctx context.Context, srcPath string) (VideoInfo, error)
	// ExtractPosterFrame grabs the frame at t=0 scaled to fit maxW×maxH and
	// returns it as encoded image bytes.
	ExtractPosterFrame(ctx context.Context, srcPath string, maxW, maxH int) ([]byte, error)
	// Transcode writes an H.264/AAC faststart MP4 rendition of srcPath to
	// dstPath.
	Transcode(ctx context.Context, srcPath, dstPath string, spec RenditionSpec) error
}

// DocumentOptimiser defines the document operations of the pipeline.
type DocumentOptimiser interface {
	PageCount(data []byte) (int, error)
	// OptimiseFile losslessly rewrites the PDF at inPath to outPath.
	OptimiseFile(inPath, outPath string) error
}
