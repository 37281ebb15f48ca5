package docgen

import "docgen-srv/internal/model"

// Pipeline stages, in execution order. Failed can follow any of them.
const (
	StageFilling    = "FILLING"
	StageSaved      = "SAVED"
	StageConverting = "CONVERTING"
	StageConverted  = "CONVERTED"
	StageStamping   = "STAMPING"
	StageStamped    = "STAMPED"
	StagePreviewing = "PREVIEWING"
	StageDone       = "DONE"
	StageFailed     = "FAILED"
)

type GenerateInput struct {
	Record model.ReportRecord
}

type GenerateOutput struct {
	Success         bool   `json:"success"`
	PdfFilename     string `json:"pdf_filename"`
	PreviewFilename string `json:"preview_filename"`
	PdfContent      []byte `json:"pdf_content"`
	PreviewContent  []byte `json:"preview_content"`
	ErrorMessage    string `json:"error_message,omitempty"`
}

type RegeneratePreviewInput struct {
	PdfFilename string
}

type RegeneratePreviewOutput struct {
	PreviewFilename string `json:"preview_filename"`
	PreviewContent  []byte `json:"preview_content"`
}
