package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docgen-srv/internal/docgen"
	"docgen-srv/pkg/convert"
	"docgen-srv/pkg/log"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...any)                 {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Info(ctx context.Context, args ...any)                  {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, args ...any)                  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, args ...any)                 {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (nopLogger) Fatal(ctx context.Context, args ...any)                 {}
func (nopLogger) Fatalf(ctx context.Context, format string, args ...any) {}

var _ log.Logger = nopLogger{}

// buildTemplate writes a minimal report template with one table cell per
// given text and returns its path.
func buildTemplate(t *testing.T, cells ...string) string {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:tbl><w:tr>`)
	for _, text := range cells {
		body.WriteString(`<w:tc><w:p><w:r><w:t xml:space="preserve">`)
		body.WriteString(escapeXML(text))
		body.WriteString(`</w:t></w:r></w:p></w:tc>`)
	}
	body.WriteString(`</w:tr></w:tbl></w:body></w:document>`)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`</Types>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range map[string]string{
		"[Content_Types].xml": contentTypes,
		"word/document.xml":   body.String(),
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create template entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatalf("failed to write template entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finalize template: %v", err)
	}

	path := filepath.Join(t.TempDir(), "template.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	return path
}

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// pngDataURI encodes a blank image of the given size as a data URI.
func pngDataURI(t *testing.T, width, height int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

type fakeConverter struct {
	err error
}

func (f *fakeConverter) Convert(ctx context.Context, docPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	pdfPath := strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".pdf"
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		return "", err
	}
	return pdfPath, nil
}

var _ convert.Converter = (*fakeConverter)(nil)

type fakeStamper struct {
	pages int
	err   error
}

func (f *fakeStamper) Stamp(ctx context.Context, pdfPath string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.pages, nil
}

var _ docgen.Stamper = (*fakeStamper)(nil)

type fakePreviewer struct {
	err   error
	calls int
}

func (f *fakePreviewer) Render(ctx context.Context, pdfPath, pngPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(pngPath, []byte("fake png"), 0o644)
}

var _ docgen.PreviewRenderer = (*fakePreviewer)(nil)

// newTestUseCase wires a usecase over temp dirs and fakes. The returned
// implUseCase is the concrete type so tests can reach internals.
func newTestUseCase(t *testing.T, template string, conv convert.Converter, st docgen.Stamper, pv docgen.PreviewRenderer) *implUseCase {
	t.Helper()
	base := t.TempDir()
	uc := New(conv, st, pv, nil, nopLogger{}, Config{
		TemplatePath: template,
		ReportsDir:   filepath.Join(base, "reports"),
		PreviewsDir:  filepath.Join(base, "reports", "previews"),
		MaxWorkers:   2,
	})
	impl, ok := uc.(*implUseCase)
	if !ok {
		t.Fatalf("unexpected usecase type %T", uc)
	}
	return impl
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to touch %s: %v", path, err)
	}
}

func fmtName(base string, counter int) string {
	if counter == 0 {
		return base
	}
	return fmt.Sprintf("%s (%d)", base, counter)
}
