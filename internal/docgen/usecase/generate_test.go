package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docgen-srv/internal/docgen"
	"docgen-srv/internal/model"
)

func testRecord() model.ReportRecord {
	return model.ReportRecord{
		Date:      "2025-03-14 10:30:00",
		Address:   "ул. Ленина, 1",
		LastName:  "Иванов",
		FirstName: "Пётр",
	}
}

func TestGenerate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		template := buildTemplate(t, "[дата]", "[фио]")
		uc := newTestUseCase(t, template, &fakeConverter{}, &fakeStamper{pages: 2}, &fakePreviewer{})

		out, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: testRecord()})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		if !out.Success {
			t.Error("Success = false, want true")
		}
		wantPdf := "Акт выполненных работ 2025-03-14 10.30.00 ул. Ленина, 1.pdf"
		if out.PdfFilename != wantPdf {
			t.Errorf("pdf filename = %q, want %q", out.PdfFilename, wantPdf)
		}
		wantPreview := "Акт выполненных работ 2025-03-14 10.30.00 ул. Ленина, 1.png"
		if out.PreviewFilename != wantPreview {
			t.Errorf("preview filename = %q, want %q", out.PreviewFilename, wantPreview)
		}
		if string(out.PdfContent) != "%PDF-1.4 fake" {
			t.Errorf("pdf content = %q", out.PdfContent)
		}
		if string(out.PreviewContent) != "fake png" {
			t.Errorf("preview content = %q", out.PreviewContent)
		}

		// The intermediate docx must be gone, the pdf and preview kept.
		if _, err := os.Stat(filepath.Join(uc.config.ReportsDir, wantPdf)); err != nil {
			t.Errorf("pdf missing on disk: %v", err)
		}
		docxPath := filepath.Join(uc.config.ReportsDir, "Акт выполненных работ 2025-03-14 10.30.00 ул. Ленина, 1.docx")
		if _, err := os.Stat(docxPath); !os.IsNotExist(err) {
			t.Errorf("intermediate docx still present: %v", err)
		}
	})

	t.Run("second generation gets a numbered name", func(t *testing.T) {
		template := buildTemplate(t, "[дата]")
		uc := newTestUseCase(t, template, &fakeConverter{}, &fakeStamper{pages: 1}, &fakePreviewer{})

		if _, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: testRecord()}); err != nil {
			t.Fatalf("first Generate failed: %v", err)
		}
		out, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: testRecord()})
		if err != nil {
			t.Fatalf("second Generate failed: %v", err)
		}

		want := "Акт выполненных работ 2025-03-14 10.30.00 ул. Ленина, 1 (1).pdf"
		if out.PdfFilename != want {
			t.Errorf("pdf filename = %q, want %q", out.PdfFilename, want)
		}
	})

	t.Run("missing date or address", func(t *testing.T) {
		template := buildTemplate(t, "[дата]")
		uc := newTestUseCase(t, template, &fakeConverter{}, &fakeStamper{pages: 1}, &fakePreviewer{})

		for _, rec := range []model.ReportRecord{
			{Address: "ул. Ленина, 1"},
			{Date: "2025-03-14 10:30:00"},
		} {
			_, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: rec})
			if !errors.Is(err, docgen.ErrRecordIncomplete) {
				t.Errorf("record %+v: error = %v, want ErrRecordIncomplete", rec, err)
			}
		}
	})

	t.Run("missing template", func(t *testing.T) {
		uc := newTestUseCase(t, filepath.Join(t.TempDir(), "absent.docx"),
			&fakeConverter{}, &fakeStamper{pages: 1}, &fakePreviewer{})

		_, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: testRecord()})
		if !errors.Is(err, docgen.ErrTemplateNotFound) {
			t.Fatalf("error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("conversion failure", func(t *testing.T) {
		template := buildTemplate(t, "[дата]")
		uc := newTestUseCase(t, template,
			&fakeConverter{err: errors.New("soffice crashed")}, &fakeStamper{pages: 1}, &fakePreviewer{})

		_, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: testRecord()})
		if !errors.Is(err, docgen.ErrConversionFailed) {
			t.Fatalf("error = %v, want ErrConversionFailed", err)
		}
		var stageErr *docgen.StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("error = %T, want *StageError", err)
		}
		if stageErr.Stage != docgen.StageConverting {
			t.Errorf("stage = %s, want %s", stageErr.Stage, docgen.StageConverting)
		}
	})

	t.Run("stamping failure", func(t *testing.T) {
		template := buildTemplate(t, "[дата]")
		uc := newTestUseCase(t, template,
			&fakeConverter{}, &fakeStamper{err: errors.New("bad pdf")}, &fakePreviewer{})

		_, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: testRecord()})
		if !errors.Is(err, docgen.ErrStampingFailed) {
			t.Fatalf("error = %v, want ErrStampingFailed", err)
		}
		var stageErr *docgen.StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("error = %T, want *StageError", err)
		}
		if stageErr.Stage != docgen.StageStamping {
			t.Errorf("stage = %s, want %s", stageErr.Stage, docgen.StageStamping)
		}
	})

	t.Run("preview failure is not fatal", func(t *testing.T) {
		template := buildTemplate(t, "[дата]")
		uc := newTestUseCase(t, template,
			&fakeConverter{}, &fakeStamper{pages: 1}, &fakePreviewer{err: errors.New("render failed")})

		out, err := uc.Generate(context.Background(), docgen.GenerateInput{Record: testRecord()})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if !out.Success {
			t.Error("Success = false, want true")
		}
		if out.PreviewFilename != "" {
			t.Errorf("preview filename = %q, want empty", out.PreviewFilename)
		}
		if out.PreviewContent != nil {
			t.Errorf("preview content = %q, want nil", out.PreviewContent)
		}
		if out.PdfFilename == "" {
			t.Error("pdf filename empty")
		}
		if !strings.Contains(out.ErrorMessage, "render failed") {
			t.Errorf("error message = %q, want preview render error", out.ErrorMessage)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		template := buildTemplate(t, "[дата]")
		uc := newTestUseCase(t, template, &fakeConverter{}, &fakeStamper{pages: 1}, &fakePreviewer{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := uc.Generate(ctx, docgen.GenerateInput{Record: testRecord()}); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestRegeneratePreview(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		pv := &fakePreviewer{}
		uc := newTestUseCase(t, "", nil, nil, pv)
		touch(t, filepath.Join(uc.config.ReportsDir, "отчёт.pdf"))

		out, err := uc.RegeneratePreview(context.Background(), docgen.RegeneratePreviewInput{PdfFilename: "отчёт.pdf"})
		if err != nil {
			t.Fatalf("RegeneratePreview failed: %v", err)
		}
		if out.PreviewFilename != "отчёт.png" {
			t.Errorf("preview filename = %q, want %q", out.PreviewFilename, "отчёт.png")
		}
		if string(out.PreviewContent) != "fake png" {
			t.Errorf("preview content = %q", out.PreviewContent)
		}
		if pv.calls != 1 {
			t.Errorf("renderer calls = %d, want 1", pv.calls)
		}
	})

	t.Run("invalid filenames", func(t *testing.T) {
		uc := newTestUseCase(t, "", nil, nil, &fakePreviewer{})

		for _, name := range []string{"", "report.docx", "../report.pdf", "sub/report.pdf"} {
			_, err := uc.RegeneratePreview(context.Background(), docgen.RegeneratePreviewInput{PdfFilename: name})
			if !errors.Is(err, docgen.ErrInvalidFilename) {
				t.Errorf("name %q: error = %v, want ErrInvalidFilename", name, err)
			}
		}
	})

	t.Run("missing pdf", func(t *testing.T) {
		uc := newTestUseCase(t, "", nil, nil, &fakePreviewer{})

		_, err := uc.RegeneratePreview(context.Background(), docgen.RegeneratePreviewInput{PdfFilename: "нет.pdf"})
		if !errors.Is(err, docgen.ErrPDFNotFound) {
			t.Fatalf("error = %v, want ErrPDFNotFound", err)
		}
	})

	t.Run("renderer failure", func(t *testing.T) {
		renderErr := errors.New("render failed")
		uc := newTestUseCase(t, "", nil, nil, &fakePreviewer{err: renderErr})
		touch(t, filepath.Join(uc.config.ReportsDir, "отчёт.pdf"))

		_, err := uc.RegeneratePreview(context.Background(), docgen.RegeneratePreviewInput{PdfFilename: "отчёт.pdf"})
		if !errors.Is(err, renderErr) {
			t.Fatalf("error = %v, want %v", err, renderErr)
		}
	})
}
