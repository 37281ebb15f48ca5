package usecase

import (
	"sync"

	"docgen-srv/internal/docgen"
	"docgen-srv/pkg/convert"
	"docgen-srv/pkg/log"
	"docgen-srv/pkg/minio"

	"golang.org/x/sync/semaphore"
)

const (
	defaultMaxWorkers = 10
	defaultBucket     = "service-reports"
)

// Config holds configuration for document generation.
type Config struct {
	TemplatePath string
	ReportsDir   string
	PreviewsDir  string
	MaxWorkers   int
	Bucket       string
}

type implUseCase struct {
	converter convert.Converter
	stamper   docgen.Stamper
	previewer docgen.PreviewRenderer
	storage   minio.MinIO // nil when artifact mirroring is disabled
	l         log.Logger
	config    Config

	sem *semaphore.Weighted

	// nameMu guards nameLocks; each entry serializes output-name
	// allocation for one (date, address) pair.
	nameMu    sync.Mutex
	nameLocks map[string]*sync.Mutex
}

// New creates a new docgen UseCase implementation.
func New(
	converter convert.Converter,
	stamper docgen.Stamper,
	previewer docgen.PreviewRenderer,
	storage minio.MinIO,
	l log.Logger,
	cfg Config,
) docgen.UseCase {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaultMaxWorkers
	}
	if cfg.Bucket == "" {
		cfg.Bucket = defaultBucket
	}

	return &implUseCase{
		converter: converter,
		stamper:   stamper,
		previewer: previewer,
		storage:   storage,
		l:         l,
		config:    cfg,
		sem:       semaphore.NewWeighted(int64(cfg.MaxWorkers)),
		nameLocks: make(map[string]*sync.Mutex),
	}
}
