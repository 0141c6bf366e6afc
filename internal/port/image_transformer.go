package port

import "io"

// ImageInfo is the result of probing an image.
type ImageInfo struct {
	Width  int
	Height int
	Format string
}

// VariantFit selects the geometry rule for a derived image.
type VariantFit string

const (
	// FitCover fills the exact target box, cropping centered.
	FitCover VariantFit = "cover"
	// FitInside bounds the width, keeping the aspect ratio. Never upscales.
	FitInside VariantFit = "inside"
)

// VariantSpec describes one derived image rendition.
type VariantSpec struct {
	Fit     VariantFit
	Width   int
	Height  int // only meaningful for FitCover
	Quality int
}

// ImageTransformer defines the CPU-bound image operations of the pipeline.
type ImageTransformer interface {
	Probe(r io.Reader) (ImageInfo, error)
	// DominantColor reduces the pixel samples to a single RGB triple rendered
	// as 6 lowercase hex digits. Deterministic for a given pixel set.
	DominantColor(r io.Reader) (string, error)
	// RenderVariant decodes r, applies spec and returns WebP bytes plus the
	// resulting dimensions.
	RenderVariant(r io.Reader, spec VariantSpec) ([]byte, ImageInfo, error)
}
