package docgen

import (
	"errors"
	"fmt"
)

var (
	ErrRecordIncomplete = errors.New("record date and address are required")
	ErrTemplateNotFound = errors.New("document template not found")
	ErrConversionFailed = errors.New("PDF conversion failed")
	ErrStampingFailed   = errors.New("stamping failed")
	ErrPDFNotFound      = errors.New("pdf file not found")
	ErrInvalidFilename  = errors.New("invalid pdf filename")
)

// StageError records which pipeline stage a generation failed in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the stage it occurred in.
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
