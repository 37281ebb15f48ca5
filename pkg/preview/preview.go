package preview

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
)

const (
	// baseDPI is the PDF unit resolution; Scale multiplies it.
	baseDPI = 72

	// DefaultScale is the preview zoom used when none is configured.
	DefaultScale = 1.5
)

// Renderer rasterizes the first page of a PDF into a PNG thumbnail.
type Renderer struct {
	scale float64
}

// NewRenderer creates a Renderer. Non-positive scales fall back to the
// default.
func NewRenderer(scale float64) *Renderer {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Renderer{scale: scale}
}

// Render writes page one of pdfPath as a PNG to pngPath.
func (r *Renderer) Render(ctx context.Context, pdfPath, pngPath string) error {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to open pdf for preview: %w", err)
	}
	defer doc.Close()

	img, err := doc.ImageDPI(0, r.scale*baseDPI)
	if err != nil {
		return fmt.Errorf("failed to rasterize page one: %w", err)
	}

	out, err := os.Create(pngPath)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		os.Remove(pngPath)
		return fmt.Errorf("failed to encode preview png: %w", err)
	}
	return nil
}
