package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"

	"github.com/linkhive/media-pipeline-go/internal/port"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Transformer implements the CPU-bound image operations: probing, dominant
// colour extraction and WebP variant rendering. Decoding understands JPEG,
// PNG, GIF and WebP; every variant is encoded as lossy WebP.
type Transformer struct {
	enc WebPEncoder
}

// compile-time check: *Transformer must satisfy port.ImageTransformer
var _ port.ImageTransformer = (*Transformer)(nil)

func NewTransformer(enc WebPEncoder) *Transformer {
	log.Println("initialising image transformer...")
	return &Transformer{enc: enc}
}

func (t *Transformer) Probe(r io.Reader) (port.ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return port.ImageInfo{}, fmt.Errorf("imaging: failed to decode image header: %w", err)
	}
	return port.ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// dominantSampleSize bounds the sampling grid so the colour sweep stays
// cheap on arbitrarily large originals.
const dominantSampleSize = 32

// DominantColor averages a fixed sampling grid over the image and renders
// the mean as 6 lowercase hex digits. The grid is derived from the image
// dimensions only, so the result is deterministic for a given input.
func (t *Transformer) DominantColor(r io.Reader) (string, error) {
	img, _, err := t.enc.Decode(r)
	if err != nil {
		return "", fmt.Errorf("imaging: failed to decode image: %w", err)
	}

	b := img.Bounds()
	stepX := b.Dx() / dominantSampleSize
	if stepX < 1 {
		stepX = 1
	}
	stepY := b.Dy() / dominantSampleSize
	if stepY < 1 {
		stepY = 1
	}

	var rSum, gSum, bSum, n uint64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			rSum += uint64(cr >> 8)
			gSum += uint64(cg >> 8)
			bSum += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return "", fmt.Errorf("imaging: empty image")
	}
	return fmt.Sprintf("%02x%02x%02x", rSum/n, gSum/n, bSum/n), nil
}

func (t *Transformer) RenderVariant(r io.Reader, spec port.VariantSpec) ([]byte, port.ImageInfo, error) {
	img, _, err := t.enc.Decode(r)
	if err != nil {
		return nil, port.ImageInfo{}, fmt.Errorf("imaging: failed to decode image: %w", err)
	}

	var out image.Image
	switch spec.Fit {
	case port.FitCover:
		out = scaleCover(img, spec.Width, spec.Height)
	case port.FitInside:
		out = scaleInside(img, spec.Width)
	default:
		return nil, port.ImageInfo{}, fmt.Errorf("imaging: unknown fit %q", spec.Fit)
	}

	buf := &bytes.Buffer{}
	if err := t.enc.Encode(out, spec.Quality, buf); err != nil {
		return nil, port.ImageInfo{}, fmt.Errorf("imaging: failed to encode WebP: %w", err)
	}
	info := port.ImageInfo{
		Width:  out.Bounds().Dx(),
		Height: out.Bounds().Dy(),
		Format: "webp",
	}
	return buf.Bytes(), info, nil
}

// scaleCover fills the width x height box, cropping the source centered on
// whichever axis overflows. A box larger than the source shrinks to fit
// inside it at the box's aspect ratio, so small sources are cropped but
// never upscaled.
func scaleCover(src image.Image, width, height int) image.Image {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	if width > srcW {
		height = height * srcW / width
		width = srcW
	}
	if height > srcH {
		width = width * srcH / height
		height = srcH
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	// pick the source window with the target's aspect ratio
	cropW, cropH := srcW, srcH
	if srcW*height > srcH*width {
		cropW = srcH * width / height
	} else {
		cropH = srcW * height / width
	}
	x0 := b.Min.X + (srcW-cropW)/2
	y0 := b.Min.Y + (srcH-cropH)/2
	window := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, window, draw.Over, nil)
	return dst
}

// scaleInside bounds the width while keeping the aspect ratio. Sources
// already narrower than the bound are passed through untouched.
func scaleInside(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}
	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
