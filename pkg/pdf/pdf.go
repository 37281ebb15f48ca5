package pdf

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Rect is a stamp placement area in PDF points, top-left page origin.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Default seal placement: the first seal always lands on page one, the
// second on page one for single-page documents, otherwise on the last page.
var (
	DefaultFirstRect  = Rect{X0: 100, Y0: 10, X1: 300, Y1: 210}
	DefaultSecondRect = Rect{X0: 370, Y0: 70, X1: 570, Y1: 270}
)

// StamperConfig configures seal placement.
type StamperConfig struct {
	SealPath string
	First    Rect
	Second   Rect
}

// Stamper overlays the seal image onto generated PDFs.
type Stamper struct {
	config    StamperConfig
	sealWidth int // seal image width in pixels, drives absolute scaling
}

// NewStamper validates the seal asset up front; a missing or unreadable
// seal is a startup failure, not a per-request one.
func NewStamper(cfg StamperConfig) (*Stamper, error) {
	if cfg.SealPath == "" {
		return nil, fmt.Errorf("seal image path is required")
	}
	f, err := os.Open(cfg.SealPath)
	if err != nil {
		return nil, fmt.Errorf("seal image not available: %w", err)
	}
	defer f.Close()
	imgCfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode seal image %s: %w", cfg.SealPath, err)
	}
	if cfg.First == (Rect{}) {
		cfg.First = DefaultFirstRect
	}
	if cfg.Second == (Rect{}) {
		cfg.Second = DefaultSecondRect
	}
	return &Stamper{config: cfg, sealWidth: imgCfg.Width}, nil
}

// Stamp overlays both seals and atomically replaces pdfPath with the
// stamped document. Returns the page count.
func (s *Stamper) Stamp(ctx context.Context, pdfPath string) (int, error) {
	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount < 1 {
		return 0, fmt.Errorf("pdf has no pages")
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	stamped := strings.TrimSuffix(pdfPath, ".pdf") + "_stamped.pdf"
	defer os.Remove(stamped)

	if err := api.AddImageWatermarksFile(pdfPath, stamped, []string{"1"}, true,
		s.config.SealPath, s.desc(s.config.First), conf); err != nil {
		return 0, fmt.Errorf("failed to apply first seal: %w", err)
	}

	secondPage := strconv.Itoa(SecondStampPage(pageCount))
	if err := api.AddImageWatermarksFile(stamped, "", []string{secondPage}, true,
		s.config.SealPath, s.desc(s.config.Second), conf); err != nil {
		return 0, fmt.Errorf("failed to apply second seal: %w", err)
	}

	// New file first, then swap it into the original path so the path the
	// caller holds stays valid.
	if err := os.Remove(pdfPath); err != nil {
		return 0, fmt.Errorf("failed to remove unstamped pdf: %w", err)
	}
	if err := os.Rename(stamped, pdfPath); err != nil {
		return 0, fmt.Errorf("failed to move stamped pdf into place: %w", err)
	}
	return pageCount, nil
}

// SecondStampPage selects the page for the second seal: page one for a
// single-page document, the last page otherwise.
func SecondStampPage(pageCount int) int {
	if pageCount <= 1 {
		return 1
	}
	return pageCount
}

// desc renders the pdfcpu watermark description for a placement rect.
// The seal is anchored at the top-left corner and scaled absolutely so its
// rendered width matches the rect width.
func (s *Stamper) desc(r Rect) string {
	scale := (r.X1 - r.X0) / float64(s.sealWidth)
	return fmt.Sprintf("pos:tl, off:%.0f %.0f, scale:%.4f abs, rot:0", r.X0, -r.Y0, scale)
}
