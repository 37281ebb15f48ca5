package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"docgen-srv/internal/docgen"
)

// RegeneratePreview re-renders the preview PNG for an already generated
// PDF, overwriting any previous preview of the same name.
func (uc *implUseCase) RegeneratePreview(ctx context.Context, input docgen.RegeneratePreviewInput) (docgen.RegeneratePreviewOutput, error) {
	name := input.PdfFilename
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, ".pdf") {
		return docgen.RegeneratePreviewOutput{}, docgen.ErrInvalidFilename
	}

	pdfPath := filepath.Join(uc.config.ReportsDir, name)
	if !pathExists(pdfPath) {
		return docgen.RegeneratePreviewOutput{}, docgen.ErrPDFNotFound
	}

	if err := os.MkdirAll(uc.config.PreviewsDir, 0o755); err != nil {
		return docgen.RegeneratePreviewOutput{}, err
	}

	previewName := strings.TrimSuffix(name, ".pdf") + ".png"
	previewPath := filepath.Join(uc.config.PreviewsDir, previewName)

	if err := uc.previewer.Render(ctx, pdfPath, previewPath); err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.RegeneratePreview: rendering failed for %s: %v", name, err)
		return docgen.RegeneratePreviewOutput{}, err
	}

	content, err := os.ReadFile(previewPath)
	if err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.RegeneratePreview: failed to read preview %s: %v", previewPath, err)
		return docgen.RegeneratePreviewOutput{}, err
	}

	return docgen.RegeneratePreviewOutput{
		PreviewFilename: previewName,
		PreviewContent:  content,
	}, nil
}
