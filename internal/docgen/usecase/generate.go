package usecase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"docgen-srv/internal/docgen"
	"docgen-srv/pkg/docx"
	"docgen-srv/pkg/minio"

	"github.com/google/uuid"
)

// Generate runs the full assembly pipeline for one report record: fill the
// template, convert to PDF, stamp, render a preview and read the results
// back. At most MaxWorkers generations run concurrently; further calls
// block until a slot frees up or the context is cancelled.
func (uc *implUseCase) Generate(ctx context.Context, input docgen.GenerateInput) (out docgen.GenerateOutput, err error) {
	if acquireErr := uc.sem.Acquire(ctx, 1); acquireErr != nil {
		return docgen.GenerateOutput{}, acquireErr
	}
	defer uc.sem.Release(1)

	stage := docgen.StageFilling
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "docgen.usecase.Generate: panic at stage %s: %v\n%s", stage, r, debug.Stack())
			out = docgen.GenerateOutput{}
			err = docgen.NewStageError(stage, fmt.Errorf("panic: %v", r))
		}
	}()

	rec := input.Record
	genID := uuid.New().String()

	// Date and address drive the output name; nothing can be produced
	// without them.
	if rec.Date == "" || rec.Address == "" {
		return docgen.GenerateOutput{}, docgen.ErrRecordIncomplete
	}

	if !pathExists(uc.config.TemplatePath) {
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, docgen.ErrTemplateNotFound)
	}
	if err := os.MkdirAll(uc.config.ReportsDir, 0o755); err != nil {
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, err)
	}
	if err := os.MkdirAll(uc.config.PreviewsDir, 0o755); err != nil {
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, err)
	}

	doc, err := docx.Open(uc.config.TemplatePath)
	if err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.Generate: failed to open template: %v", err)
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, err)
	}

	if err := uc.fill(ctx, doc, &rec, genID); err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.Generate: failed to fill template: %v", err)
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, err)
	}

	alloc, err := uc.allocateName(&rec)
	if err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.Generate: failed to allocate output name: %v", err)
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, err)
	}

	if err := doc.Save(alloc.DocxPath); err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.Generate: failed to save document: %v", err)
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, err)
	}
	stage = docgen.StageSaved

	stage = docgen.StageConverting
	pdfPath, err := uc.converter.Convert(ctx, alloc.DocxPath)
	if err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.Generate: conversion failed for %s: %v", alloc.Name, err)
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, fmt.Errorf("%w: %v", docgen.ErrConversionFailed, err))
	}
	if err := os.Remove(alloc.DocxPath); err != nil {
		uc.l.Warnf(ctx, "docgen.usecase.Generate: failed to remove intermediate docx %s: %v", alloc.DocxPath, err)
	}
	if pdfPath != alloc.PdfPath {
		if err := os.Rename(pdfPath, alloc.PdfPath); err != nil {
			return docgen.GenerateOutput{}, docgen.NewStageError(stage, err)
		}
	}
	stage = docgen.StageConverted

	stage = docgen.StageStamping
	pageCount, err := uc.stamper.Stamp(ctx, alloc.PdfPath)
	if err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.Generate: stamping failed for %s: %v", alloc.Name, err)
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, fmt.Errorf("%w: %v", docgen.ErrStampingFailed, err))
	}
	uc.l.Debugf(ctx, "docgen.usecase.Generate: stamped %s (%d pages)", alloc.Name, pageCount)
	stage = docgen.StageStamped

	// Preview failure is not fatal: the document itself is complete.
	stage = docgen.StagePreviewing
	previewFilename := filepath.Base(alloc.PreviewPath)
	var previewContent []byte
	var previewErr string
	if err := uc.previewer.Render(ctx, alloc.PdfPath, alloc.PreviewPath); err != nil {
		uc.l.Warnf(ctx, "docgen.usecase.Generate: preview rendering failed for %s: %v", alloc.Name, err)
		previewFilename = ""
		previewErr = fmt.Sprintf("preview rendering failed: %v", err)
	} else if previewContent, err = os.ReadFile(alloc.PreviewPath); err != nil {
		uc.l.Warnf(ctx, "docgen.usecase.Generate: failed to read preview %s: %v", alloc.PreviewPath, err)
		previewFilename = ""
		previewContent = nil
		previewErr = fmt.Sprintf("preview read failed: %v", err)
	}

	pdfContent, err := os.ReadFile(alloc.PdfPath)
	if err != nil {
		uc.l.Errorf(ctx, "docgen.usecase.Generate: failed to read pdf %s: %v", alloc.PdfPath, err)
		return docgen.GenerateOutput{}, docgen.NewStageError(stage, err)
	}

	uc.mirror(ctx, filepath.Base(alloc.PdfPath), pdfContent, previewFilename, previewContent)

	stage = docgen.StageDone
	return docgen.GenerateOutput{
		Success:         true,
		PdfFilename:     filepath.Base(alloc.PdfPath),
		PreviewFilename: previewFilename,
		PdfContent:      pdfContent,
		PreviewContent:  previewContent,
		ErrorMessage:    previewErr,
	}, nil
}

// mirror uploads finished artifacts to object storage when it is
// configured. Failures are logged and never fail the generation.
func (uc *implUseCase) mirror(ctx context.Context, pdfName string, pdfContent []byte, previewName string, previewContent []byte) {
	if uc.storage == nil {
		return
	}

	upload := func(objectName, contentType string, content []byte) {
		_, err := uc.storage.UploadFile(ctx, &minio.UploadRequest{
			BucketName:   uc.config.Bucket,
			ObjectName:   objectName,
			OriginalName: filepath.Base(objectName),
			Reader:       bytes.NewReader(content),
			Size:         int64(len(content)),
			ContentType:  contentType,
		})
		if err != nil {
			uc.l.Warnf(ctx, "docgen.usecase.mirror: failed to upload %s: %v", objectName, err)
		}
	}

	upload("reports/"+pdfName, "application/pdf", pdfContent)
	if previewName != "" && len(previewContent) > 0 {
		upload("previews/"+previewName, "image/png", previewContent)
	}
}
