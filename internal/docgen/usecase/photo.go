package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"docgen-srv/internal/model"
	"docgen-srv/pkg/docx"

	"github.com/disintegration/imaging"
)

// Photos are boxed to 18 x 13.5 cm at 96 dpi. Landscape photos clamp to
// the box width, portrait and square ones to the box height, and nothing
// is ever upscaled.
const (
	photoBoxWidthCm  = 18.0
	photoBoxHeightCm = 13.5
	photoDPI         = 96

	// The cm box truncated to whole pixels at photoDPI.
	photoBoxWidthPx  = 680
	photoBoxHeightPx = 510
)

// insertPhotos clears the placeholder cell and appends one centered
// paragraph per photo. Photos that fail to decode are skipped.
func (uc *implUseCase) insertPhotos(ctx context.Context, doc *docx.Document, cellIndex int, rec *model.ReportRecord, genID string) error {
	doc.Cell(cellIndex).SetText("")

	for i, photo := range rec.Photos {
		img, err := decodePhoto(photo)
		if err != nil {
			uc.l.Warnf(ctx, "docgen.usecase.insertPhotos: skipping photo %d: %v", i, err)
			continue
		}

		path, widthCm, heightCm, err := uc.preparePhoto(img, genID, i)
		if err != nil {
			return err
		}

		// Cell offsets shift after every mutation, so re-resolve the
		// placeholder cell before each append.
		cell := doc.Cell(cellIndex)
		addErr := cell.AddImage(path, widthCm, heightCm)
		_ = os.Remove(path)
		if addErr != nil {
			return fmt.Errorf("failed to embed photo %d: %w", i, addErr)
		}
	}

	return nil
}

// decodePhoto accepts a data URI or a bare base64 payload.
func decodePhoto(data string) (image.Image, error) {
	payload := data
	if idx := strings.Index(data, ","); idx >= 0 {
		payload = data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// preparePhoto flattens transparency onto white, downsizes the photo to the
// box, writes it to a per-generation temp file and returns the display size
// in centimeters. The display size comes from the fit target, not from the
// stored pixel size.
func (uc *implUseCase) preparePhoto(img image.Image, genID string, index int) (string, float64, float64, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return "", 0, 0, fmt.Errorf("photo %d has empty dimensions", index)
	}

	aspect := float64(width) / float64(height)
	var targetW, targetH int
	if aspect > 1 {
		targetW = photoBoxWidthPx
		targetH = int(float64(targetW) / aspect)
	} else {
		targetH = photoBoxHeightPx
		targetW = int(float64(targetH) * aspect)
	}

	// JPEG has no alpha channel, so composite onto a white background
	// before saving.
	flat := imaging.New(width, height, color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	resized := imaging.Fit(flat, targetW, targetH, imaging.Lanczos)

	path := filepath.Join(os.TempDir(), fmt.Sprintf("docgen_%s_%d.jpg", genID, index))
	if err := imaging.Save(resized, path); err != nil {
		return "", 0, 0, fmt.Errorf("failed to save photo %d: %w", index, err)
	}

	widthCm := float64(targetW) * 2.54 / photoDPI
	heightCm := float64(targetH) * 2.54 / photoDPI
	return path, widthCm, heightCm, nil
}
