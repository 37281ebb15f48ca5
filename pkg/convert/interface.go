package convert

import (
	"context"
	"fmt"
	"time"
)

// Supported backends. Selection happens at startup from configuration so
// new backends can be added without touching the pipeline.
const (
	BackendLibreOffice = "libreoffice"
)

// Converter turns an office document into a PDF placed alongside the
// source. Implementations make exactly one attempt; retries are the
// caller's decision (the pipeline makes none).
type Converter interface {
	Convert(ctx context.Context, docPath string) (string, error)
}

// Config selects and configures a converter backend.
type Config struct {
	Backend string
	Binary  string
	Timeout time.Duration
}

// New creates the configured converter backend.
func New(cfg Config) (Converter, error) {
	switch cfg.Backend {
	case "", BackendLibreOffice:
		return NewLibreOffice(cfg.Binary, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown converter backend: %q", cfg.Backend)
	}
}
