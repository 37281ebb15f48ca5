package docgen

import (
	"context"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Generate(ctx context.Context, input GenerateInput) (GenerateOutput, error)
	RegeneratePreview(ctx context.Context, input RegeneratePreviewInput) (RegeneratePreviewOutput, error)
}

// Stamper overlays the organization seal onto a finished PDF in place and
// reports the page count of the stamped document.
type Stamper interface {
	Stamp(ctx context.Context, pdfPath string) (int, error)
}

// PreviewRenderer rasterizes the first page of a PDF into a PNG file.
type PreviewRenderer interface {
	Render(ctx context.Context, pdfPath, pngPath string) error
}
