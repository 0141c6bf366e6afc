package media

import (
	"time"

	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
)

// Default size caps and ticket TTL; overridable through Limits.
const (
	DefaultMaxImageBytes    = 10 * 1024 * 1024
	DefaultMaxVideoBytes    = 100 * 1024 * 1024
	DefaultMaxDocumentBytes = 25 * 1024 * 1024
	DefaultSignedURLTTL     = 5 * time.Minute
)

// Limits bundles the configurable caps shared by the broker and the
// completion dispatcher.
type Limits struct {
	MaxImageBytes    int64
	MaxVideoBytes    int64
	MaxDocumentBytes int64
	SignedURLTTL     time.Duration
}

// DefaultLimits returns the built-in caps and ticket TTL.
func DefaultLimits() Limits {
	return Limits{
		MaxImageBytes:    DefaultMaxImageBytes,
		MaxVideoBytes:    DefaultMaxVideoBytes,
		MaxDocumentBytes: DefaultMaxDocumentBytes,
		SignedURLTTL:     DefaultSignedURLTTL,
	}
}

// Cap returns the byte cap for one media type.
func (l Limits) Cap(mt model.MediaType) int64 {
	switch mt {
	case model.MediaTypeVideo:
		return l.MaxVideoBytes
	case model.MediaTypeDocument:
		return l.MaxDocumentBytes
	default:
		return l.MaxImageBytes
	}
}

// mimeExtensions is the canonical, closed mime → extension table. Anything
// absent from it is unsupported media.
var mimeExtensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/webp":      "webp",
	"video/mp4":       "mp4",
	"video/quicktime": "mov",
	"video/x-msvideo": "avi",
	"application/pdf": "pdf",
}

// MimeTypeToExtension resolves the canonical extension for a mime type.
func MimeTypeToExtension(mimeType string) (string, error) {
	ext, ok := mimeExtensions[mimeType]
	if !ok {
		return "", ErrUnsupportedMedia
	}
	return ext, nil
}

// MediaTypeForMime classifies a mime type against the closed allow-list.
func MediaTypeForMime(mimeType string) (model.MediaType, error) {
	switch mimeType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return model.MediaTypeImage, nil
	case "video/mp4", "video/quicktime", "video/x-msvideo":
		return model.MediaTypeVideo, nil
	case "application/pdf":
		return model.MediaTypeDocument, nil
	default:
		return "", ErrUnsupportedMedia
	}
}

// ImageVariantSpecs is the image rendition table. Targets exceeding the
// source shrink to fit it; the transformer never upscales.
var ImageVariantSpecs = map[model.Purpose]port.VariantSpec{
	model.PurposeThumb: {Fit: port.FitCover, Width: 150, Height: 150, Quality: 85},
	model.PurposeFeed:  {Fit: port.FitInside, Width: 400, Quality: 90},
	model.PurposeFull:  {Fit: port.FitInside, Width: 1200, Quality: 95},
}

// VideoRenditionSpecs is the transcode table. Both renditions are
// H.264/AAC faststart MP4.
var VideoRenditionSpecs = map[model.Purpose]port.RenditionSpec{
	model.Purpose480p: {Width: 854, Height: 480, VideoBitrateKbps: 1000, CRF: 23, Preset: "fast"},
	model.Purpose720p: {Width: 1280, Height: 720, VideoBitrateKbps: 2500, CRF: 23, Preset: "fast"},
}

// Poster frames are extracted at t=0 scaled to fit this box.
const (
	PosterMaxWidth  = 1280
	PosterMaxHeight = 720
)
