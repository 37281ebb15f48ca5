package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single conversion run. LibreOffice can hang
	// indefinitely on a corrupt document, so the process is always killed
	// after this long.
	DefaultTimeout = 120 * time.Second

	defaultBinary = "soffice"
)

var (
	ErrConversionFailed = errors.New("conversion process failed")
	ErrNoOutput         = errors.New("converter produced no output file")
)

type libreOffice struct {
	binary  string
	timeout time.Duration
}

// NewLibreOffice returns a Converter that shells out to a headless
// LibreOffice. Empty binary and non-positive timeout fall back to defaults.
func NewLibreOffice(binary string, timeout time.Duration) Converter {
	if binary == "" {
		binary = defaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &libreOffice{binary: binary, timeout: timeout}
}

// Convert writes the PDF next to the source document and returns its path.
// The source file is left in place.
func (c *libreOffice) Convert(ctx context.Context, docPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outDir := filepath.Dir(docPath)
	pdfPath := strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".pdf"

	cmd := exec.CommandContext(ctx, c.binary,
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		docPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: timed out after %s", ErrConversionFailed, c.timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%w: %v: %s", ErrConversionFailed, err, msg)
		}
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	// LibreOffice exits zero even for some documents it silently skips,
	// so the output file is the real success signal.
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoOutput, pdfPath)
	}

	return pdfPath, nil
}
