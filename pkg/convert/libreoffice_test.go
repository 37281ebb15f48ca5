package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// writeStub installs a shell script standing in for the soffice binary.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub converter script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "soffice-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("failed to write stub: %v", err)
	}
	return path
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.docx")
	if err := os.WriteFile(path, []byte("doc"), 0o644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	return path
}

func TestNew(t *testing.T) {
	t.Run("default backend", func(t *testing.T) {
		if _, err := New(Config{}); err != nil {
			t.Fatalf("New with empty backend failed: %v", err)
		}
	})

	t.Run("libreoffice backend", func(t *testing.T) {
		if _, err := New(Config{Backend: BackendLibreOffice}); err != nil {
			t.Fatalf("New failed: %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := New(Config{Backend: "wordpad"}); err == nil {
			t.Fatal("expected error for unknown backend")
		}
	})
}

func TestConvert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// The document path is the last argument; the stub drops a PDF
		// next to it the way a real conversion does.
		stub := writeStub(t, `
for doc; do :; done
printf '%s' pdf > "${doc%.docx}.pdf"
`)
		doc := writeDoc(t)

		c := NewLibreOffice(stub, time.Minute)
		pdfPath, err := c.Convert(context.Background(), doc)
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}

		want := filepath.Join(filepath.Dir(doc), "report.pdf")
		if pdfPath != want {
			t.Errorf("pdf path = %q, want %q", pdfPath, want)
		}
		if _, err := os.Stat(pdfPath); err != nil {
			t.Errorf("output pdf missing: %v", err)
		}
	})

	t.Run("process failure", func(t *testing.T) {
		stub := writeStub(t, `echo "conversion error" >&2; exit 1`)
		c := NewLibreOffice(stub, time.Minute)

		_, err := c.Convert(context.Background(), writeDoc(t))
		if !errors.Is(err, ErrConversionFailed) {
			t.Fatalf("error = %v, want ErrConversionFailed", err)
		}
	})

	t.Run("silent skip", func(t *testing.T) {
		stub := writeStub(t, `exit 0`)
		c := NewLibreOffice(stub, time.Minute)

		_, err := c.Convert(context.Background(), writeDoc(t))
		if !errors.Is(err, ErrNoOutput) {
			t.Fatalf("error = %v, want ErrNoOutput", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		stub := writeStub(t, `sleep 5`)
		c := NewLibreOffice(stub, 50*time.Millisecond)

		_, err := c.Convert(context.Background(), writeDoc(t))
		if !errors.Is(err, ErrConversionFailed) {
			t.Fatalf("error = %v, want ErrConversionFailed", err)
		}
	})
}
