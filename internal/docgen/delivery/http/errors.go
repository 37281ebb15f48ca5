package http

import (
	"errors"

	"docgen-srv/internal/docgen"
	pkgErrors "docgen-srv/pkg/errors"
)

var (
	errInvalidRequest   = pkgErrors.NewHTTPError(400, "Invalid request body")
	errRecordIncomplete = pkgErrors.NewHTTPError(400, "Record date and address are required")
	errTemplateNotFound = pkgErrors.NewHTTPError(500, "Document template is missing")
	errConversionFailed = pkgErrors.NewHTTPError(500, "Failed to convert document to PDF")
	errStampingFailed   = pkgErrors.NewHTTPError(500, "Failed to stamp document")
	errPDFNotFound      = pkgErrors.NewHTTPError(404, "PDF not found")
	errInvalidFilename  = pkgErrors.NewHTTPError(400, "Invalid PDF filename")
	errGenerationFailed = pkgErrors.NewHTTPError(500, "Document generation failed")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, docgen.ErrRecordIncomplete):
		return errRecordIncomplete
	case errors.Is(err, docgen.ErrTemplateNotFound):
		return errTemplateNotFound
	case errors.Is(err, docgen.ErrConversionFailed):
		return errConversionFailed
	case errors.Is(err, docgen.ErrStampingFailed):
		return errStampingFailed
	case errors.Is(err, docgen.ErrPDFNotFound):
		return errPDFNotFound
	case errors.Is(err, docgen.ErrInvalidFilename):
		return errInvalidFilename
	default:
		return errGenerationFailed
	}
}
