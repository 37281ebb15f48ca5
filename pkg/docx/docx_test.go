package docx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`</Types>`

func buildPackage(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := map[string]string{
		"[Content_Types].xml": testContentTypes,
		"word/document.xml":   documentXML,
	}
	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(entries[name])); err != nil {
			t.Fatalf("failed to write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
	return buf.Bytes()
}

func wrapBody(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + inner + `</w:body></w:document>`
}

func TestOpenBytes(t *testing.T) {
	t.Run("missing document part", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, _ := zw.Create("[Content_Types].xml")
		w.Write([]byte(testContentTypes))
		zw.Close()

		if _, err := OpenBytes(buf.Bytes()); err == nil {
			t.Fatal("expected error for package without word/document.xml")
		}
	})

	t.Run("not a zip archive", func(t *testing.T) {
		if _, err := OpenBytes([]byte("plain text")); err == nil {
			t.Fatal("expected error for non-zip input")
		}
	})
}

func TestCellText(t *testing.T) {
	body := wrapBody(`<w:tbl><w:tr>` +
		`<w:tc><w:p><w:r><w:t>first</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>second paragraph</w:t></w:r></w:p></w:tc>` +
		`</w:tr></w:tbl>`)
	doc, err := OpenBytes(buildPackage(t, body))
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	if got := doc.CellCount(); got != 2 {
		t.Fatalf("CellCount = %d, want 2", got)
	}
	if got := doc.Cell(0).Text(); got != "first" {
		t.Errorf("cell 0 text = %q, want %q", got, "first")
	}
	want := "line one\nline two\nsecond paragraph"
	if got := doc.Cell(1).Text(); got != want {
		t.Errorf("cell 1 text = %q, want %q", got, want)
	}
}

func TestNestedTableCellsSkipped(t *testing.T) {
	body := wrapBody(`<w:tbl><w:tr>` +
		`<w:tc><w:p><w:r><w:t>outer</w:t></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>inner</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`</w:tc>` +
		`</w:tr></w:tbl>`)
	doc, err := OpenBytes(buildPackage(t, body))
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	if got := doc.CellCount(); got != 1 {
		t.Fatalf("CellCount = %d, want 1 (nested cell must not count)", got)
	}
	if got := doc.Cell(0).Text(); !strings.Contains(got, "outer") || !strings.Contains(got, "inner") {
		t.Errorf("outer cell text = %q, want both outer and inner content", got)
	}
}

func TestSetText(t *testing.T) {
	t.Run("replaces content and preserves properties", func(t *testing.T) {
		body := wrapBody(`<w:tbl><w:tr>` +
			`<w:tc><w:tcPr><w:tcW w:w="5000" w:type="dxa"/></w:tcPr>` +
			`<w:p><w:r><w:t>old</w:t></w:r></w:p></w:tc>` +
			`</w:tr></w:tbl>`)
		doc, err := OpenBytes(buildPackage(t, body))
		if err != nil {
			t.Fatalf("OpenBytes failed: %v", err)
		}

		doc.Cell(0).SetText("new value")

		if got := doc.Cell(0).Text(); got != "new value" {
			t.Errorf("text after SetText = %q, want %q", got, "new value")
		}
		if !bytes.Contains(doc.body, []byte(`<w:tcPr><w:tcW w:w="5000" w:type="dxa"/></w:tcPr>`)) {
			t.Error("cell properties were not preserved")
		}
	})

	t.Run("newlines become breaks", func(t *testing.T) {
		body := wrapBody(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>x</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)
		doc, _ := OpenBytes(buildPackage(t, body))

		doc.Cell(0).SetText("a\nb")

		if got := doc.Cell(0).Text(); got != "a\nb" {
			t.Errorf("text = %q, want %q", got, "a\nb")
		}
		if !bytes.Contains(doc.body, []byte("<w:br/>")) {
			t.Error("expected explicit line break element")
		}
	})

	t.Run("empty text yields empty paragraph", func(t *testing.T) {
		body := wrapBody(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>x</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)
		doc, _ := OpenBytes(buildPackage(t, body))

		doc.Cell(0).SetText("")

		if got := doc.Cell(0).Text(); got != "" {
			t.Errorf("text = %q, want empty", got)
		}
	})

	t.Run("escapes markup characters", func(t *testing.T) {
		body := wrapBody(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>x</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)
		doc, _ := OpenBytes(buildPackage(t, body))

		doc.Cell(0).SetText(`a < b & "c"`)

		if got := doc.Cell(0).Text(); got != `a < b & "c"` {
			t.Errorf("text = %q, want %q", got, `a < b & "c"`)
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	body := wrapBody(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>before</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)
	doc, err := OpenBytes(buildPackage(t, body))
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	doc.Cell(0).SetText("after")

	path := filepath.Join(t.TempDir(), "out.docx")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := reopened.Cell(0).Text(); got != "after" {
		t.Errorf("text after round trip = %q, want %q", got, "after")
	}
}

func TestAddImage(t *testing.T) {
	imgPath := filepath.Join(t.TempDir(), "photo.png")
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatalf("failed to create image file: %v", err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	body := wrapBody(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>photos</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`)
	doc, err := OpenBytes(buildPackage(t, body))
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	if err := doc.Cell(0).AddImage(imgPath, 2, 1.5); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}

	raw, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	reopened, err := OpenBytes(raw)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	if _, ok := reopened.files["word/media/image1.png"]; !ok {
		t.Error("media entry missing from package")
	}
	rels, ok := reopened.files["word/_rels/document.xml.rels"]
	if !ok {
		t.Fatal("relationships part missing from package")
	}
	if !bytes.Contains(rels, []byte("media/image1.png")) {
		t.Error("relationship to media entry missing")
	}

	// 2 cm and 1.5 cm in EMU.
	if !bytes.Contains(reopened.body, []byte(`cx="720000"`)) {
		t.Error("extent width missing or wrong")
	}
	if !bytes.Contains(reopened.body, []byte(`cy="540000"`)) {
		t.Error("extent height missing or wrong")
	}

	t.Run("unsupported extension", func(t *testing.T) {
		if err := doc.Cell(0).AddImage("seal.gif", 1, 1); err == nil {
			t.Fatal("expected error for unsupported image type")
		}
	})
}
